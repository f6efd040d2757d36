package runtime

import "fmt"

// ErrorStrategy selects how a generated pipeline reacts to a step error.
type ErrorStrategy string

const (
	// StrategyHalt stops the pipeline on the first step error.
	StrategyHalt ErrorStrategy = "halt"
	// StrategyContinue logs the error and keeps executing later steps.
	StrategyContinue ErrorStrategy = "continue"
	// StrategyRetry retries the failed step before giving up.
	StrategyRetry ErrorStrategy = "retry"
)

// ParseStrategy validates a strategy tag from configuration or flags.
func ParseStrategy(s string) (ErrorStrategy, error) {
	switch ErrorStrategy(s) {
	case StrategyHalt, StrategyContinue, StrategyRetry:
		return ErrorStrategy(s), nil
	default:
		return "", fmt.Errorf("unknown error strategy %q (want halt, continue, or retry)", s)
	}
}
