// File: internal/concat/result.go
package concat

import (
	"errors"
	"fmt"

	"github.com/xkilldash9x/catr/internal/source"
)

// ReadError reports an I/O failure while streaming an already opened source.
type ReadError struct {
	Token string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Token, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Result is the outcome for one token. Err is nil, a *source.OpenError or a
// *ReadError. Lines counts the lines written for the token, including those
// written before a read failure.
type Result struct {
	Token string
	Lines int
	Err   error
}

// Opened reports whether the token resolved to a source.
func (r Result) Opened() bool {
	var openErr *source.OpenError
	return !errors.As(r.Err, &openErr)
}

// Summary is the ordered list of per-token results of a run.
type Summary struct {
	Results []Result
}

// Failures returns the results that carry an error.
func (s Summary) Failures() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Succeeded reports whether at least one token was opened.
func (s Summary) Succeeded() bool {
	for _, r := range s.Results {
		if r.Opened() {
			return true
		}
	}
	return false
}

// Lines returns the total number of lines written.
func (s Summary) Lines() int {
	total := 0
	for _, r := range s.Results {
		total += r.Lines
	}
	return total
}
