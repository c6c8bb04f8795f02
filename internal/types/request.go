package types

import (
	"fmt"
	"strings"
)

type SourceCoordinate struct {
	Project  string `yaml:"project"`
	Package  string `yaml:"package"`
	Revision string `yaml:"rev,omitempty"`
}

func (c SourceCoordinate) String() string {
	if strings.TrimSpace(c.Revision) == "" {
		return fmt.Sprintf("%s/%s", c.Project, c.Package)
	}
	return fmt.Sprintf("%s/%s@%s", c.Project, c.Package, c.Revision)
}

type RequestAction struct {
	Type   ActionType       `yaml:"type"`
	Source SourceCoordinate `yaml:"source"`
	Target SourceCoordinate `yaml:"target"`
}

type Assignee struct {
	Kind    AssigneeKind `yaml:"kind"`
	Name    string       `yaml:"name"`
	Package string       `yaml:"package,omitempty"`
}

func (a Assignee) String() string {
	if a.Kind == AssigneeProject && a.Package != "" {
		return fmt.Sprintf("%s/%s", a.Name, a.Package)
	}
	return a.Name
}

type Review struct {
	State    ReviewState `yaml:"state"`
	Assignee Assignee    `yaml:"by"`
}

type PendingRequest struct {
	ID      string          `yaml:"id"`
	State   RequestState    `yaml:"state"`
	Actions []RequestAction `yaml:"actions"`
	Reviews []Review        `yaml:"reviews,omitempty"`
}
