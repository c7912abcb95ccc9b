// File: internal/source/source.go
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// StdinToken is the path token that selects standard input.
const StdinToken = "-"

// ErrIsDirectory is the cause reported when a token names a directory.
var ErrIsDirectory = errors.New("is a directory")

// ErrEmptyToken is the cause reported for an empty path token.
var ErrEmptyToken = errors.New("empty path")

// Line is one line of a source. Content excludes the terminator; Terminator
// is "\n", or empty for a final line that had none.
type Line struct {
	Content    []byte
	Terminator []byte
}

// Blank reports whether the line has no content besides its terminator.
func (l Line) Blank() bool {
	return len(l.Content) == 0
}

// LineSource is a finite, non-restartable stream of lines read from one
// source. It has exactly two implementations: standard input and a file.
type LineSource interface {
	// Token is the path token the source was opened from.
	Token() string
	// Next returns the next line, or io.EOF once the source is exhausted.
	Next() (Line, error)
	// Close releases the underlying resource. It is safe to call twice.
	Close() error
}

// OpenError reports that a token could not be resolved to a readable source.
type OpenError struct {
	Token string
	Err   error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Token, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// lineReader splits a buffered reader into lines, keeping terminators.
type lineReader struct {
	r   *bufio.Reader
	eof bool
}

func (lr *lineReader) next() (Line, error) {
	if lr.eof {
		return Line{}, io.EOF
	}
	data, err := lr.r.ReadBytes('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return Line{}, err
		}
		lr.eof = true
		if len(data) == 0 {
			return Line{}, io.EOF
		}
		return Line{Content: data}, nil
	}
	// ReadBytes only returns a nil error when data ends in the delimiter.
	n := len(data) - 1
	return Line{Content: data[:n:n], Terminator: data[n:]}, nil
}
