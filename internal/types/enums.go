package types

// Verdict is the outcome of an admissibility check. Indeterminate means
// "retry on a later run" and must never be treated as a decline.
type Verdict string

const (
	VerdictAdmissible    Verdict = "admissible"
	VerdictInadmissible  Verdict = "inadmissible"
	VerdictIndeterminate Verdict = "indeterminate"
)

type RequestState string

const (
	RequestStateNew    RequestState = "new"
	RequestStateReview RequestState = "review"
)

type ReviewState string

const (
	ReviewStateNew      ReviewState = "new"
	ReviewStateAccepted ReviewState = "accepted"
)

type AssigneeKind string

const (
	AssigneeUser    AssigneeKind = "user"
	AssigneeGroup   AssigneeKind = "group"
	AssigneeProject AssigneeKind = "project"
)

type ActionType string

const (
	ActionSubmit              ActionType = "submit"
	ActionMaintenanceIncident ActionType = "maintenance_incident"
	ActionMaintenanceRelease  ActionType = "maintenance_release"
)

// ReviewAction is what the bot does with its own review of a request.
type ReviewAction string

const (
	ReviewActionAccept  ReviewAction = "accept"
	ReviewActionDecline ReviewAction = "decline"
	ReviewActionSkip    ReviewAction = "skip"
)

type CheckerMode string

const (
	CheckerModeSource CheckerMode = "source"
	CheckerModeTags   CheckerMode = "tags"
)
