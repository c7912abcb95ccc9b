// File: internal/source/resolver.go
package source

import (
	"bufio"
	"io"

	"github.com/spf13/afero"
)

// Resolver turns path tokens into line sources.
type Resolver struct {
	fs    afero.Fs
	stdin *bufio.Reader
}

// NewResolver creates a Resolver that opens files through fs and serves the
// "-" token from stdin. All stdin sources share one buffer, so a second "-"
// continues where the first stopped.
func NewResolver(fs afero.Fs, stdin io.Reader) *Resolver {
	return &Resolver{
		fs:    fs,
		stdin: bufio.NewReader(stdin),
	}
}

// Open resolves token to a line source. Failures are returned as *OpenError
// and leave no resource open.
func (r *Resolver) Open(token string) (LineSource, error) {
	if token == "" {
		return nil, &OpenError{Token: token, Err: ErrEmptyToken}
	}
	if token == StdinToken {
		return &stdinSource{lineReader: lineReader{r: r.stdin}}, nil
	}

	f, err := r.fs.Open(token)
	if err != nil {
		return nil, &OpenError{Token: token, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Token: token, Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, &OpenError{Token: token, Err: ErrIsDirectory}
	}
	return &fileSource{
		token:      token,
		file:       f,
		lineReader: lineReader{r: bufio.NewReader(f)},
	}, nil
}

// stdinSource reads the process's standard input. Closing it does not close
// stdin; it only stops further reads through this source.
type stdinSource struct {
	lineReader
	closed bool
}

func (s *stdinSource) Token() string { return StdinToken }

func (s *stdinSource) Next() (Line, error) {
	if s.closed {
		return Line{}, io.EOF
	}
	return s.next()
}

func (s *stdinSource) Close() error {
	s.closed = true
	return nil
}

// fileSource reads an opened file.
type fileSource struct {
	lineReader
	token string
	file  afero.File
}

func (s *fileSource) Token() string { return s.token }

func (s *fileSource) Next() (Line, error) {
	if s.file == nil {
		return Line{}, io.EOF
	}
	return s.next()
}

func (s *fileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
