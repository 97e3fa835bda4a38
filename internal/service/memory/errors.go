package memory

import "fmt"

// StrategyError marks a recoverable memory failure. The Manager logs it
// and carries on; it never escapes to callers.
type StrategyError struct {
	Op   string // "init", "save" or "load"
	Kind Kind
	Err  error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("memory %s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }
