package types

const (
	DefaultRequestPrefix   = "sr"
	DefaultHistoryLimit    = 5
	DefaultStagingPrefix   = "openSUSE:Factory:Staging:"
	DefaultRepoCheckerUser = "repo-checker"
	DefaultAPIURL          = "https://api.opensuse.org"
)

// DefaultUpstreamProjects is the candidate list used when neither the
// config file nor the command line names one.
var DefaultUpstreamProjects = []string{"openSUSE:Factory", "openSUSE.org:openSUSE:Factory"}

type NamespaceMapping struct {
	Prefix        string `yaml:"prefix"`
	Endpoint      string `yaml:"endpoint"`
	RequestPrefix string `yaml:"request_prefix"`
}

// CheckerConfig is the static configuration handed to the resolver. The
// override table is keyed by default project, then by package name.
type CheckerConfig struct {
	APIURL           string                       `yaml:"api_url"`
	UpstreamProjects []string                     `yaml:"upstream_projects"`
	Overrides        map[string]map[string]string `yaml:"overrides,omitempty"`
	LookupFiles      map[string]string            `yaml:"lookup_files,omitempty"`
	NamespaceMap     []NamespaceMapping           `yaml:"namespace_map,omitempty"`
	HistoryLimit     int                          `yaml:"history_limit"`
	StagingPrefix    string                       `yaml:"staging_prefix"`
	RepoCheckerUser  string                       `yaml:"repo_checker_user"`
	RequestPrefix    string                       `yaml:"request_prefix"`
}

// Route is where a logical project lives on the federated build service.
type Route struct {
	Endpoint      string
	Project       string
	ProjectPrefix string
	RequestPrefix string
}
