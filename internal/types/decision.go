package types

// Blocker names the review that kept a candidate project from a definitive
// answer.
type Blocker struct {
	Project    string `yaml:"project"`
	RequestRef string `yaml:"request,omitempty"`
	Assignee   string `yaml:"assignee,omitempty"`
	Reason     string `yaml:"reason"`
	Anomaly    bool   `yaml:"anomaly,omitempty"`
}

type Decision struct {
	Verdict    Verdict   `yaml:"verdict"`
	Reason     string    `yaml:"reason"`
	Project    string    `yaml:"project,omitempty"`
	RequestRef string    `yaml:"request,omitempty"`
	Blockers   []Blocker `yaml:"blockers,omitempty"`
}

// RequestEvaluation is the review chain verdict for one pending request.
// Relevant is false when no action carries the evaluated checksum.
// Unresolved marks an irrelevant request with actions whose checksum could
// not be looked up.
type RequestEvaluation struct {
	Relevant   bool
	Unresolved bool
	Verdict    Verdict
	RequestRef string
	Blocker    *Assignee
	Anomaly    bool
	Reason     string
}

type IssueSummary struct {
	Total   int `yaml:"total"`
	Deleted int `yaml:"deleted"`
}

type ReviewOutcome struct {
	RequestID string       `yaml:"request"`
	Action    ReviewAction `yaml:"action"`
	Verdict   Verdict      `yaml:"verdict"`
	Message   string       `yaml:"message"`
}

type ReviewReport struct {
	GeneratedAt string          `yaml:"generated_at"`
	Mode        CheckerMode     `yaml:"mode"`
	Outcomes    []ReviewOutcome `yaml:"outcomes"`
}
