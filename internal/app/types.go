package app

import "factory-checker/internal/types"

// CheckerOptions are the inputs every command shares. Non-zero fields
// override the config file.
type CheckerOptions struct {
	ConfigPath       string
	SnapshotPath     string
	APIURL           string
	UpstreamProjects []string
	HistoryLimit     int
}

type CheckRequest struct {
	CheckerOptions
	Source types.SourceCoordinate
	Target types.SourceCoordinate
}

type CheckResult struct {
	Candidates []string
	Decision   types.Decision
}

type TagsRequest struct {
	CheckerOptions
	RequestID string
}

type TagsResult struct {
	Outcome types.ReviewOutcome
}

type ReviewRequest struct {
	CheckerOptions
	Mode       types.CheckerMode
	DryRun     bool
	ReportPath string
}

type ReviewResult struct {
	Outcomes []types.ReviewOutcome
	Accepted int
	Declined int
	Skipped  int
}

type CandidatesRequest struct {
	CheckerOptions
	Package string
}

type CandidatesResult struct {
	Package string
	Routes  []types.Route
}

type WatchRequest struct {
	ReviewRequest
	// ExtraPaths are watched in addition to the config and snapshot files.
	ExtraPaths []string
}
