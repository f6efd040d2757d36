package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// checkNames in display order.
var checkNames = []string{"config", "structure", "syntax", "dependencies"}

// checkFuncs maps selector names to check implementations.
var checkFuncs = map[string]func(root string) Result{
	"config":       CheckConfig,
	"structure":    CheckStructure,
	"syntax":       CheckSyntax,
	"dependencies": CheckDependencies,
}

// Options select which checks run and whether fixes are applied.
type Options struct {
	Check string // one of the check names, or "all"
	Fix   bool
}

// Run executes the selected checks against the project root. With Fix
// set, fixable failures are repaired and re-reported as fixed.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	selected := checkNames
	if opts.Check != "" && opts.Check != "all" {
		if _, ok := checkFuncs[opts.Check]; !ok {
			return nil, fmt.Errorf("unknown check %q (want one of %v, or all)", opts.Check, checkNames)
		}
		selected = []string{opts.Check}
	}

	report := &Report{OK: true}
	for _, name := range selected {
		result := checkFuncs[name](root)

		if result.Status == StatusFail && opts.Fix && result.HasFix() {
			if err := result.fix(ctx); err != nil {
				result.Message = fmt.Sprintf("%s (fix failed: %v)", result.Message, err)
			} else {
				result.Status = StatusFixed
				report.Fixed++
			}
		}

		if result.Status == StatusFail {
			report.OK = false
		}
		report.Checks = append(report.Checks, result)
	}
	return report, nil
}

// statusGlyphs for the human-readable checklist.
var statusGlyphs = map[Status]string{
	StatusPass:  "ok",
	StatusFail:  "FAIL",
	StatusWarn:  "warn",
	StatusSkip:  "skip",
	StatusFixed: "fixed",
}

// WriteText renders the report as a checklist.
func (r *Report) WriteText(w io.Writer) {
	for _, check := range r.Checks {
		fmt.Fprintf(w, "[%s] %s: %s\n", statusGlyphs[check.Status], check.Name, check.Message)
		if check.Status == StatusFail && check.FixHint != "" {
			fmt.Fprintf(w, "       fix: %s (run with --fix)\n", check.FixHint)
		}
	}
	if r.OK {
		fmt.Fprintln(w, "\nAll checks passed.")
	} else {
		fmt.Fprintln(w, "\nSome checks failed.")
	}
}

// WriteJSON renders the report as JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
