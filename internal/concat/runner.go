// File: internal/concat/runner.go
package concat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/xkilldash9x/catr/internal/render"
	"github.com/xkilldash9x/catr/internal/source"
)

// Opener resolves a path token to a line source. *source.Resolver implements it.
type Opener interface {
	Open(token string) (source.LineSource, error)
}

// Runner streams every token of a Config to an output writer, reporting
// per-token failures on a separate diagnostics writer.
type Runner struct {
	opener   Opener
	renderer *render.Renderer
	out      io.Writer
	diag     io.Writer
	logger   *zap.Logger
}

// NewRunner creates a Runner. A nil logger is replaced by a no-op logger.
func NewRunner(opener Opener, renderer *render.Renderer, out, diag io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		opener:   opener,
		renderer: renderer,
		out:      out,
		diag:     diag,
		logger:   logger.Named("concat"),
	}
}

// Run processes every token of cfg in order with one run-wide counter.
// Open and read failures are reported, recorded in the Summary and skipped.
// The returned error is reserved for failures of the run itself: a write to
// the output failing or ctx being cancelled.
func (r *Runner) Run(ctx context.Context, cfg Config) (Summary, error) {
	var (
		summary Summary
		counter render.Counter
	)
	w := bufio.NewWriter(r.out)
	policy := cfg.Policy()

	r.logger.Debug("Starting run",
		zap.Strings("files", cfg.Files()),
		zap.Bool("number_all", cfg.NumberAll()),
		zap.Bool("number_nonblank", cfg.NumberNonblank()),
		zap.Stringer("mode", policy.Mode()),
		zap.Int("width", r.renderer.Format().Width),
		zap.String("separator", r.renderer.Format().Separator),
	)

	for _, token := range cfg.Files() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result, err := r.process(ctx, w, token, policy, &counter)
		summary.Results = append(summary.Results, result)
		if err != nil {
			return summary, err
		}
	}

	r.logger.Debug("Run complete",
		zap.Int("tokens", len(summary.Results)),
		zap.Int("failures", len(summary.Failures())),
		zap.Int("lines", summary.Lines()),
		zap.Int("numbered", counter.Numbered()),
	)
	return summary, nil
}

// process handles a single token. The source is closed on every path and
// buffered output is flushed before any diagnostic is written, so stdout and
// stderr stay in token order.
func (r *Runner) process(ctx context.Context, w *bufio.Writer, token string, policy render.Policy, counter *render.Counter) (Result, error) {
	result := Result{Token: token}

	src, err := r.opener.Open(token)
	if err != nil {
		result.Err = err
		r.report("open", token, err)
		return result, nil
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			r.logger.Warn("Failed to close source", zap.String("token", token), zap.Error(cerr))
		}
	}()
	r.logger.Debug("Opened source", zap.String("token", token))

	for line, err := range r.renderer.Render(contextSource{LineSource: src, ctx: ctx}, policy, counter) {
		if err != nil {
			if ferr := w.Flush(); ferr != nil {
				return result, fmt.Errorf("write output for %s: %w", token, ferr)
			}
			if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
				r.logger.Debug("Run cancelled", zap.String("token", token), zap.Int("lines", result.Lines))
				return result, cerr
			}
			result.Err = &ReadError{Token: token, Err: err}
			r.report("read", token, err)
			return result, nil
		}
		if _, err := w.Write(line); err != nil {
			return result, fmt.Errorf("write output for %s: %w", token, err)
		}
		result.Lines++
	}

	if err := w.Flush(); err != nil {
		return result, fmt.Errorf("write output for %s: %w", token, err)
	}
	r.logger.Debug("Finished source", zap.String("token", token), zap.Int("lines", result.Lines))
	return result, nil
}

// contextSource stops handing out lines once ctx is done, so a cancelled run
// never pulls (and numbers) a line it will not write.
type contextSource struct {
	source.LineSource
	ctx context.Context
}

func (s contextSource) Next() (source.Line, error) {
	if err := s.ctx.Err(); err != nil {
		return source.Line{}, err
	}
	return s.LineSource.Next()
}

// report writes the user-facing diagnostic for a failed token and logs it.
func (r *Runner) report(op, token string, err error) {
	fmt.Fprintf(r.diag, "Failed to %s %s: %v\n", op, token, rootCause(err))
	r.logger.Warn("Skipping source", zap.String("op", op), zap.String("token", token), zap.Error(err))
}

// rootCause strips the wrappers that only repeat the token, leaving the
// cause the OS or filesystem reported.
func rootCause(err error) error {
	var openErr *source.OpenError
	if errors.As(err, &openErr) {
		err = openErr.Err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
