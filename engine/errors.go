package engine

import "fmt"

// EngineError reports a broken invariant: a state the rules can never reach
// in correct operation. The match it occurs in must be aborted.
type EngineError struct {
	Op  string
	Msg string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine: %s: %s", e.Op, e.Msg)
}

func invariantf(op, format string, args ...any) error {
	return &EngineError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
