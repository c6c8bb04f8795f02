package policies

import (
	"fmt"
	"strings"

	"factory-checker/internal/types"
)

const acceptedMessage = "ok"

// DeclineMessage is the reason posted when content is not upstream yet.
func DeclineMessage(projects []string) string {
	return fmt.Sprintf("the package needs to be accepted in %s first", strings.Join(projects, " or "))
}

// MissingIssueReferenceMessage is posted when a submission references no
// tracked issue.
const MissingIssueReferenceMessage = `The project you submitted to requires a bug tracker ID marked in the
.changes file. The build service supports several patterns, see
$ osc api /issue_trackers

See also https://en.opensuse.org/openSUSE:Packaging_Patches_guidelines#Current_set_of_abbreviations`

// ReviewActionFor maps a decision to the bot's own review action. Only a
// conclusive Inadmissible declines; Indeterminate leaves the request for the
// next run.
func ReviewActionFor(decision types.Decision) types.ReviewOutcome {
	message := decision.Reason
	switch decision.Verdict {
	case types.VerdictAdmissible:
		if strings.TrimSpace(message) == "" {
			message = acceptedMessage
		}
		return types.ReviewOutcome{Action: types.ReviewActionAccept, Verdict: decision.Verdict, Message: message}
	case types.VerdictInadmissible:
		return types.ReviewOutcome{Action: types.ReviewActionDecline, Verdict: decision.Verdict, Message: message}
	default:
		return types.ReviewOutcome{Action: types.ReviewActionSkip, Verdict: types.VerdictIndeterminate, Message: message}
	}
}
