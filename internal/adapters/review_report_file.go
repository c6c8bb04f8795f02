package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"factory-checker/internal/ports"
	"factory-checker/internal/types"
)

// ReviewReportFileAdapter collects review outcomes and writes them as a
// YAML report on Flush.
type ReviewReportFileAdapter struct {
	Path string
	Mode types.CheckerMode
	Now  func() time.Time

	mu       sync.Mutex
	outcomes []types.ReviewOutcome
}

func NewReviewReportFileAdapter(path string, mode types.CheckerMode) *ReviewReportFileAdapter {
	return &ReviewReportFileAdapter{Path: path, Mode: mode, Now: time.Now}
}

func (a *ReviewReportFileAdapter) Record(ctx context.Context, outcome types.ReviewOutcome) error {
	a.mu.Lock()
	a.outcomes = append(a.outcomes, outcome)
	a.mu.Unlock()
	logOutcome(ctx, outcome)
	return nil
}

func (a *ReviewReportFileAdapter) Flush(_ context.Context) error {
	if a.Path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	a.mu.Lock()
	report := types.ReviewReport{
		GeneratedAt: a.now().UTC().Format(time.RFC3339),
		Mode:        a.Mode,
		Outcomes:    append([]types.ReviewOutcome{}, a.outcomes...),
	}
	a.outcomes = nil
	a.mu.Unlock()

	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode review report").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write review report").
			WithCause(err)
	}
	return nil
}

func (a *ReviewReportFileAdapter) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// ReviewLogSink only logs outcomes. It backs dry runs.
type ReviewLogSink struct{}

func NewReviewLogSink() ReviewLogSink {
	return ReviewLogSink{}
}

func (s ReviewLogSink) Record(ctx context.Context, outcome types.ReviewOutcome) error {
	logOutcome(ctx, outcome)
	return nil
}

func (s ReviewLogSink) Flush(_ context.Context) error {
	return nil
}

func logOutcome(ctx context.Context, outcome types.ReviewOutcome) {
	log.Ctx(ctx).Info().
		Str("request", outcome.RequestID).
		Str("action", string(outcome.Action)).
		Str("verdict", string(outcome.Verdict)).
		Msg(outcome.Message)
}

var (
	_ ports.ReviewSinkPort = (*ReviewReportFileAdapter)(nil)
	_ ports.ReviewSinkPort = ReviewLogSink{}
)
