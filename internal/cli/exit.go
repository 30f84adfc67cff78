package cli

import "fmt"

// ExitError pins a specific process exit code to an error, matching the
// estimator's documented exit codes (-1 usage, -2 empty/unreadable
// directory). main.go unwraps it to choose os.Exit's argument. Every
// RunE in this package returns either nil or an *ExitError, except that
// estimate --watch returns watch.Loop's error unwrapped; main.go treats
// any bare error (that one, or cobra's own arg-count or flag parsing
// failure) as a usage error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

func usageError(format string, args ...any) error {
	return &ExitError{Code: -1, Err: fmt.Errorf(format, args...)}
}

func directoryError(format string, args ...any) error {
	return &ExitError{Code: -2, Err: fmt.Errorf(format, args...)}
}
