package core

import (
	"strings"

	"factory-checker/internal/types"
)

// NamespaceRouter maps a logical project name onto the build service
// instance hosting it. Interconnected instances are addressed through a
// project prefix such as "openSUSE.org:".
type NamespaceRouter struct {
	DefaultEndpoint      string
	DefaultRequestPrefix string
	Mappings             []types.NamespaceMapping
}

func NewNamespaceRouter(defaultEndpoint string, defaultRequestPrefix string, mappings []types.NamespaceMapping) NamespaceRouter {
	if strings.TrimSpace(defaultRequestPrefix) == "" {
		defaultRequestPrefix = types.DefaultRequestPrefix
	}
	return NamespaceRouter{
		DefaultEndpoint:      defaultEndpoint,
		DefaultRequestPrefix: defaultRequestPrefix,
		Mappings:             mappings,
	}
}

// Route returns the first mapping whose prefix starts project, in
// declaration order.
func (r NamespaceRouter) Route(project string) types.Route {
	for _, mapping := range r.Mappings {
		if mapping.Prefix == "" || !strings.HasPrefix(project, mapping.Prefix) {
			continue
		}
		requestPrefix := mapping.RequestPrefix
		if requestPrefix == "" {
			requestPrefix = r.DefaultRequestPrefix
		}
		return types.Route{
			Endpoint:      mapping.Endpoint,
			Project:       project[len(mapping.Prefix):],
			ProjectPrefix: mapping.Prefix,
			RequestPrefix: requestPrefix,
		}
	}
	return types.Route{
		Endpoint:      r.DefaultEndpoint,
		Project:       project,
		RequestPrefix: r.DefaultRequestPrefix,
	}
}

// RequestRef formats a request id the way reviewers refer to it, e.g. sr#1234.
func RequestRef(prefix string, id string) string {
	return strings.Join([]string{prefix, id}, "#")
}
