// File: internal/render/render.go

// Package render numbers lines.
package render

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/xkilldash9x/catr/internal/source"
)

// Mode is the resolved numbering behaviour for a run.
type Mode int

const (
	// ModeVerbatim emits every line unchanged.
	ModeVerbatim Mode = iota
	// ModeNumberAll numbers every line, blank or not.
	ModeNumberAll
	// ModeNumberNonblank numbers non-blank lines only.
	ModeNumberNonblank
)

func (m Mode) String() string {
	switch m {
	case ModeVerbatim:
		return "verbatim"
	case ModeNumberAll:
		return "number-all"
	case ModeNumberNonblank:
		return "number-nonblank"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Policy carries the two numbering flags as given by the user.
type Policy struct {
	NumberAll      bool
	NumberNonblank bool
}

// Mode resolves the flags. NumberNonblank wins when both are set.
func (p Policy) Mode() Mode {
	switch {
	case p.NumberNonblank:
		return ModeNumberNonblank
	case p.NumberAll:
		return ModeNumberAll
	default:
		return ModeVerbatim
	}
}

// Counter is the run-wide line number. The zero value is ready to use and
// hands out 1 first.
type Counter struct {
	numbered int
}

// Next returns the number for the next numbered line and advances the counter.
func (c *Counter) Next() int {
	c.numbered++
	return c.numbered
}

// Numbered returns how many lines have received a number so far.
func (c *Counter) Numbered() int {
	return c.numbered
}

// Format controls the layout of the number prefix.
type Format struct {
	// Width is the minimum width the number is right-justified in.
	Width int
	// Separator is written between the number and the line content.
	Separator string
}

// DefaultFormat is the conventional six-column, tab-separated layout.
func DefaultFormat() Format {
	return Format{Width: 6, Separator: "\t"}
}

// Validate rejects formats that could not produce a readable prefix.
func (f Format) Validate() error {
	if f.Width < 1 {
		return fmt.Errorf("number width must be at least 1, got %d", f.Width)
	}
	if f.Separator == "" {
		return errors.New("number separator must not be empty")
	}
	return nil
}

// Renderer turns source lines into output lines.
type Renderer struct {
	format Format
}

// New creates a Renderer. An invalid format is replaced by DefaultFormat.
func New(format Format) *Renderer {
	if format.Validate() != nil {
		format = DefaultFormat()
	}
	return &Renderer{format: format}
}

// Format returns the layout the renderer uses.
func (r *Renderer) Format() Format {
	return r.format
}

// Render lazily renders src under policy. Numbers come from counter, which
// the caller shares across every source of a run. A read failure is yielded
// once with a nil line and ends the sequence. The sequence consumes src, so
// ranging over it a second time yields nothing.
func (r *Renderer) Render(src source.LineSource, policy Policy, counter *Counter) iter.Seq2[[]byte, error] {
	mode := policy.Mode()
	return func(yield func([]byte, error) bool) {
		for {
			line, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(r.AppendLine(nil, line, mode, counter), nil) {
				return
			}
		}
	}
}

// AppendLine appends the rendered form of line to dst and returns the
// extended buffer. The counter advances only when the line is numbered.
func (r *Renderer) AppendLine(dst []byte, line source.Line, mode Mode, counter *Counter) []byte {
	numbered := mode == ModeNumberAll || (mode == ModeNumberNonblank && !line.Blank())
	if numbered {
		dst = r.appendNumber(dst, counter.Next())
	}
	dst = append(dst, line.Content...)
	return append(dst, line.Terminator...)
}

func (r *Renderer) appendNumber(dst []byte, n int) []byte {
	var digits [20]byte
	num := strconv.AppendInt(digits[:0], int64(n), 10)
	for pad := r.format.Width - len(num); pad > 0; pad-- {
		dst = append(dst, ' ')
	}
	dst = append(dst, num...)
	return append(dst, r.format.Separator...)
}
