package types

// BuildServiceSnapshot is a captured view of one or more build service
// instances, keyed by endpoint.
type BuildServiceSnapshot struct {
	Endpoints map[string]EndpointSnapshot `yaml:"endpoints"`
	Queue     []string                    `yaml:"queue,omitempty"`
}

type EndpointSnapshot struct {
	Packages []PackageSnapshot `yaml:"packages"`
	Requests []PendingRequest  `yaml:"requests"`
	Diffs    []RequestDiff     `yaml:"diffs,omitempty"`
}

type PackageSnapshot struct {
	Project string `yaml:"project"`
	Package string `yaml:"package"`
	// Revisions maps revision numbers to content checksums.
	Revisions map[string]string `yaml:"revisions,omitempty"`
	// History lists checksums, most recent first.
	History []string     `yaml:"history,omitempty"`
	Latest  string       `yaml:"latest"`
	Issues  IssueSummary `yaml:"issues,omitempty"`
	// DiffError marks a package whose issue diff cannot be fetched.
	DiffError bool `yaml:"diff_error,omitempty"`
}

type RequestDiff struct {
	RequestID string `yaml:"request"`
	Diff      string `yaml:"diff"`
}
