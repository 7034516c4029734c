package model

import "fmt"

// PreconditionError is the only error class an orchestration run propagates to
// the caller. Everything that can fail per item (fetch, scoring, dispatch) is
// absorbed; a failed precondition means no subsequent step can succeed.
type PreconditionError struct {
	Reason string
	Hint   string
}

func (e *PreconditionError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s (%s)", e.Reason, e.Hint)
	}
	return e.Reason
}

// NotLoggedIn builds the standard not-authenticated precondition failure.
func NotLoggedIn(platform string) *PreconditionError {
	return &PreconditionError{
		Reason: "not logged in to " + platform,
		Hint:   "please authenticate first",
	}
}

// BrowserUnavailable builds the standard session-unavailable precondition failure.
func BrowserUnavailable(err error) *PreconditionError {
	return &PreconditionError{
		Reason: "browser session unavailable: " + err.Error(),
		Hint:   "close stray browser windows and retry",
	}
}
