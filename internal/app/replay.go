package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/autobullet/internal/config"
	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/script"
)

// ReplayOptions configures Replay.
type ReplayOptions struct {
	// Config applies to every session. Nil means defaults.
	Config *config.Config
	Logger *logging.Logger
	// Out receives the report and script output.
	Out io.Writer
	// Parallel bounds concurrent scripts. Zero means GOMAXPROCS.
	Parallel int
	// Timeout bounds each script. Zero uses the script default.
	Timeout time.Duration
}

// ReplayResult is the outcome of one script.
type ReplayResult struct {
	Path     string
	Err      error
	Output   string
	Duration time.Duration
}

// Replay runs each script in its own session, concurrently, and writes a
// report in argument order. It returns ErrReplayFailed if any script failed.
func Replay(ctx context.Context, paths []string, opts ReplayOptions) ([]ReplayResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	results := make([]ReplayResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, path := range paths {
		g.Go(func() error {
			res, err := replayOne(gCtx, path, opts, logger)
			results[i] = res
			// Only infrastructure failures stop the group.
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if opts.Out != nil {
		writeReport(opts.Out, results)
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d scripts", ErrReplayFailed, failed, len(results))
	}
	return results, nil
}

func replayOne(ctx context.Context, path string, opts ReplayOptions, logger *logging.Logger) (ReplayResult, error) {
	res := ReplayResult{Path: path}

	session, err := NewSession(ctx, opts.Config, logger)
	if err != nil {
		return res, err
	}
	defer session.Close(context.WithoutCancel(ctx))

	var out bytes.Buffer
	runOpts := []script.Option{
		script.WithLogger(logger),
		script.WithOutput(&out),
	}
	if opts.Timeout > 0 {
		runOpts = append(runOpts, script.WithTimeout(opts.Timeout))
	}

	start := time.Now()
	res.Err = script.NewRunner(session.Workspace(), runOpts...).RunFile(ctx, path)
	res.Duration = time.Since(start)
	res.Output = out.String()

	if res.Err != nil {
		logger.WithField("script", path).Warn("replay failed: %v", res.Err)
	}
	return res, nil
}

func writeReport(w io.Writer, results []ReplayResult) {
	for _, res := range results {
		if res.Output != "" {
			fmt.Fprint(w, res.Output)
		}
		if res.Err != nil {
			fmt.Fprintf(w, "FAIL %s (%s)\n    %v\n", res.Path, res.Duration.Round(time.Millisecond), res.Err)
			continue
		}
		fmt.Fprintf(w, "ok   %s (%s)\n", res.Path, res.Duration.Round(time.Millisecond))
	}
}
