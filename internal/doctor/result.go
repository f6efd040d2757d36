// Package doctor diagnoses a loom project: manifest validity, expected
// directory layout, syntax of generated Go files, and the project's
// dependency on the runtime module.
package doctor

import "context"

// Status is the outcome of a single check.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusWarn  Status = "warn"
	StatusSkip  Status = "skip"
	StatusFixed Status = "fixed"
)

// FixAction repairs a failed check. Whatever the fix needs is captured
// in the closure when the check runs.
type FixAction func(ctx context.Context) error

// Result is the outcome of one check. Fixable failures carry a FixHint
// and an unexported fix function.
type Result struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	FixHint string `json:"fix_hint,omitempty"`
	fix     FixAction
}

// HasFix reports whether the result carries a fix action.
func (r *Result) HasFix() bool {
	return r.fix != nil
}

// Pass creates a passing result.
func Pass(name, message string) Result {
	return Result{Name: name, Status: StatusPass, Message: message}
}

// Fail creates a failing result with no automatic fix.
func Fail(name, message string) Result {
	return Result{Name: name, Status: StatusFail, Message: message}
}

// FailWithFix creates a failing result that --fix can repair.
func FailWithFix(name, message, fixHint string, fix FixAction) Result {
	return Result{Name: name, Status: StatusFail, Message: message, FixHint: fixHint, fix: fix}
}

// Warn creates a warning result. Warnings do not fail the doctor run.
func Warn(name, message string) Result {
	return Result{Name: name, Status: StatusWarn, Message: message}
}

// Skip creates a skipped result, used when a prerequisite check failed.
func Skip(name, message string) Result {
	return Result{Name: name, Status: StatusSkip, Message: message}
}

// Report aggregates a doctor run.
type Report struct {
	Checks []Result `json:"checks"`
	OK     bool     `json:"ok"`
	Fixed  int      `json:"fixed,omitempty"`
}
