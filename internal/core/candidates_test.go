package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatesForFallsBackToDefaults(t *testing.T) {
	defaults := []string{"openSUSE:Factory", "openSUSE.org:openSUSE:Factory"}
	resolver := NewUpstreamCandidateResolver(defaults, fakeLookup{})

	got := resolver.CandidatesFor(t.Context(), "nano")
	assert.Equal(t, defaults, got)

	got[0] = "mutated"
	assert.Equal(t, "openSUSE:Factory", resolver.Defaults[0])
}

func TestCandidatesForWithoutLookup(t *testing.T) {
	resolver := NewUpstreamCandidateResolver([]string{"openSUSE:Factory"}, nil)
	assert.Equal(t, []string{"openSUSE:Factory"}, resolver.CandidatesFor(t.Context(), "nano"))
}

func TestCandidatesForFollowsDefaultOrder(t *testing.T) {
	defaults := []string{"openSUSE:Factory", "openSUSE.org:openSUSE:Factory"}
	lookup := fakeLookup{
		"openSUSE.org:openSUSE:Factory": {"nano": "openSUSE.org:editors"},
		"openSUSE:Factory":              {"nano": "editors", "vim": "editors"},
	}
	resolver := NewUpstreamCandidateResolver(defaults, lookup)

	assert.Equal(t, []string{"editors", "openSUSE.org:editors"}, resolver.CandidatesFor(t.Context(), "nano"))
	assert.Equal(t, []string{"editors"}, resolver.CandidatesFor(t.Context(), "vim"))
	assert.Equal(t, defaults, resolver.CandidatesFor(t.Context(), "emacs"))
}

func TestCandidatesForIgnoresBlankOverrides(t *testing.T) {
	resolver := NewUpstreamCandidateResolver([]string{"openSUSE:Factory"}, fakeLookup{
		"openSUSE:Factory": {"nano": "  "},
	})
	assert.Equal(t, []string{"openSUSE:Factory"}, resolver.CandidatesFor(t.Context(), "nano"))
}
