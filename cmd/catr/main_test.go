// File: cmd/catr/main_test.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/catr/cmd"
)

// resetMocks restores the original function implementations.
func resetMocks() {
	osExit = os.Exit
	execute = cmd.Execute
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "interrupted", err: fmt.Errorf("concatenation aborted: %w", context.Canceled), want: 0},
		{name: "configuration failure", err: errors.New("invalid configuration"), want: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestMain_ExitCodes(t *testing.T) {
	defer resetMocks()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "clean run", err: nil, want: 0},
		{name: "failed run", err: errors.New("write output: broken pipe"), want: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := -1
			osExit = func(code int) { got = code }
			execute = func(ctx context.Context) error {
				assert.NotNil(t, ctx)
				return tc.err
			}

			main()
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandlePanic(t *testing.T) {
	defer resetMocks()

	got := -1
	osExit = func(code int) { got = code }
	execute = func(context.Context) error { panic("boom") }

	main()
	assert.Equal(t, 1, got)
}
