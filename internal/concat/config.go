// File: internal/concat/config.go
package concat

import (
	"slices"

	"github.com/xkilldash9x/catr/internal/render"
	"github.com/xkilldash9x/catr/internal/source"
)

// Config describes one invocation: which tokens to read and how to number
// them. It is immutable once built.
type Config struct {
	files          []string
	numberAll      bool
	numberNonblank bool
}

// NewConfig builds a Config. With no files the run reads standard input.
func NewConfig(files []string, numberAll, numberNonblank bool) Config {
	if len(files) == 0 {
		files = []string{source.StdinToken}
	}
	return Config{
		files:          slices.Clone(files),
		numberAll:      numberAll,
		numberNonblank: numberNonblank,
	}
}

// Files returns a copy of the path tokens in the order they are processed.
func (c Config) Files() []string {
	if len(c.files) == 0 {
		return []string{source.StdinToken}
	}
	return slices.Clone(c.files)
}

// NumberAll reports whether -n was requested.
func (c Config) NumberAll() bool { return c.numberAll }

// NumberNonblank reports whether -b was requested.
func (c Config) NumberNonblank() bool { return c.numberNonblank }

// Policy returns the numbering policy for the renderer.
func (c Config) Policy() render.Policy {
	return render.Policy{NumberAll: c.numberAll, NumberNonblank: c.numberNonblank}
}
