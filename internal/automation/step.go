package automation

import (
	"context"

	"github.com/xkilldash9x/env-sync/internal/config"
)

// Names of the built-in steps, in execution order.
const (
	StepValidateEnvironment = "validate_environment"
	StepCollectInputs       = "collect_inputs"
	StepProcessItems        = "process_items"
	StepGenerateReport      = "generate_report"
)

// Step is one named unit of work in the automation sequence.
type Step interface {
	Name() string
	Execute(ctx context.Context, cfg config.Config, report *Report) error
}

// StepFunc is the signature of a step body.
type StepFunc func(ctx context.Context, cfg config.Config, report *Report) error

type namedStep struct {
	name string
	fn   StepFunc
}

// NewStep wraps fn as a Step called name.
func NewStep(name string, fn StepFunc) Step {
	return namedStep{name: name, fn: fn}
}

func (s namedStep) Name() string { return s.name }

func (s namedStep) Execute(ctx context.Context, cfg config.Config, report *Report) error {
	return s.fn(ctx, cfg, report)
}

// DefaultSteps returns the built-in automation sequence.
func DefaultSteps() []Step {
	return []Step{
		NewStep(StepValidateEnvironment, validateEnvironment),
		NewStep(StepCollectInputs, collectInputs),
		NewStep(StepProcessItems, processItems),
		NewStep(StepGenerateReport, generateReport),
	}
}

// The built-in step bodies do no work yet.

func validateEnvironment(ctx context.Context, cfg config.Config, report *Report) error {
	return nil
}

func collectInputs(ctx context.Context, cfg config.Config, report *Report) error {
	return nil
}

func processItems(ctx context.Context, cfg config.Config, report *Report) error {
	return nil
}

func generateReport(ctx context.Context, cfg config.Config, report *Report) error {
	return nil
}
