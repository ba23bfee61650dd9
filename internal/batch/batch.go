// Package batch converts many style packages concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"stylemig/internal/convert"
	"stylemig/internal/logger"
	"stylemig/internal/pack"
)

// ErrFailed is returned when at least one input failed
var ErrFailed = errors.New("one or more styles failed to convert")

// Runner converts a single input
type Runner interface {
	Run(ctx context.Context, input string) (*convert.Report, error)
}

// Result is the outcome for one input
type Result struct {
	Index  int
	Input  string
	Report *convert.Report
	Err    error
}

// EventKind distinguishes progress events
type EventKind int

const (
	Started EventKind = iota
	Finished
)

// Event reports progress. Events are delivered from a single goroutine.
type Event struct {
	Kind   EventKind
	Input  string
	Result *Result // set for Finished
	Done   int
	Total  int
}

// Options control a batch run
type Options struct {
	Workers int
	OnEvent func(Event)
	Logger  logger.Logger
}

type job struct {
	index int
	input string
}

// Run converts all inputs with a pool of workers. A failing input never
// stops the others. Results are returned in input order; the error is
// ErrFailed when any input failed, or the context error when canceled.
func Run(ctx context.Context, runner Runner, inputs []string, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	emit := opts.OnEvent
	if emit == nil {
		emit = func(Event) {}
	}

	log.Info("Starting batch", logger.Int("inputs", len(inputs)), logger.Int("workers", workers))

	jobs := make(chan job, len(inputs))
	started := make(chan string, len(inputs))
	results := make(chan Result, len(inputs))

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(ctx, w, runner, log, &wg, jobs, started, results)
	}

	for i, input := range inputs {
		jobs <- job{index: i, input: input}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(started)
		close(results)
	}()

	out := make([]Result, 0, len(inputs))
	done := 0
	for started != nil || results != nil {
		select {
		case input, ok := <-started:
			if !ok {
				started = nil
				continue
			}
			emit(Event{Kind: Started, Input: input, Done: done, Total: len(inputs)})
		case res, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			done++
			out = append(out, res)
			// out is re-sorted below, so listeners get their own copy
			r := res
			emit(Event{Kind: Finished, Input: res.Input, Result: &r, Done: done, Total: len(inputs)})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	failed := 0
	for _, r := range out {
		if r.Err != nil {
			failed++
		}
	}
	log.Info("All batch workers finished", logger.Int("converted", len(out)-failed), logger.Int("failed", failed))

	if err := ctx.Err(); err != nil {
		return out, err
	}
	if failed > 0 {
		return out, ErrFailed
	}
	return out, nil
}

func worker(ctx context.Context, id int, runner Runner, log logger.Logger, wg *sync.WaitGroup,
	jobs <-chan job, started chan<- string, results chan<- Result) {
	defer wg.Done()

	for j := range jobs {
		res := Result{Index: j.index, Input: j.input}
		if err := ctx.Err(); err != nil {
			res.Err = err
			results <- res
			continue
		}

		started <- j.input
		res.Report, res.Err = runner.Run(ctx, j.input)
		if res.Err != nil {
			log.Error("Conversion failed",
				logger.Int("worker_id", id),
				logger.String("input", j.input),
				logger.Error(res.Err))
		}
		results <- res
	}
}

// Discover expands the given paths into style inputs. A directory holding
// a legacy script or config.xml is a style itself; any other directory
// contributes its style subdirectories and .zip files.
func Discover(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() || isStyleDir(p) {
			add(p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		found := 0
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			child := filepath.Join(p, e.Name())
			if e.IsDir() || strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
				add(child)
				found++
			}
		}
		if found == 0 {
			add(p)
		}
	}
	return out, nil
}

func isStyleDir(dir string) bool {
	for _, name := range []string{pack.LegacyScript, pack.Metadata, pack.TargetScript} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
