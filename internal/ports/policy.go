package ports

import "factory-checker/internal/types"

// ReviewPolicyPort decides whether an open review can be considered
// satisfied without waiting for it.
type ReviewPolicyPort interface {
	AutoSatisfied(review types.Review) bool
}
