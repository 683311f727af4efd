package automation

import (
	"go.uber.org/zap/zapcore"
)

// StepError records a step that failed during a run.
type StepError struct {
	Step  string `json:"step" yaml:"step"`
	Error string `json:"error" yaml:"error"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e StepError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("step", e.Step)
	enc.AddString("error", e.Error)
	return nil
}

// Report summarizes the outcome of one automation run.
// Success is derived from Errors when the run finishes and is never set on its own.
type Report struct {
	Success   bool        `json:"success" yaml:"success"`
	Processed int         `json:"processed" yaml:"processed"`
	Errors    []StepError `json:"errors" yaml:"errors"`
}

// NewReport returns an empty report for a run that has not started.
func NewReport() *Report {
	return &Report{Success: true, Errors: []StepError{}}
}

// AddError appends a failure for the named step.
func (r *Report) AddError(step string, err error) {
	r.Errors = append(r.Errors, StepError{Step: step, Error: err.Error()})
}

func (r *Report) finalize() {
	r.Success = len(r.Errors) == 0
}

// MarshalLogObject implements zapcore.ObjectMarshaler so a report can be logged with zap.Object.
func (r *Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("success", r.Success)
	enc.AddInt("processed", r.Processed)
	return enc.AddArray("errors", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, e := range r.Errors {
			if err := arr.AppendObject(e); err != nil {
				return err
			}
		}
		return nil
	}))
}
