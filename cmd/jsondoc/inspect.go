package main

import (
	"flag"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/writer"
)

// timing is what inspecting one file measured.
type timing struct {
	path    string
	size    int
	used    int
	parse   time.Duration
	format  time.Duration
	cleanup time.Duration
	code    int
	err     error
}

func setupInspect(*flag.FlagSet) runner {
	return runInspect
}

func runInspect(e *env, paths []string) int {
	if len(paths) == 0 {
		fmt.Fprintln(e.stderr, "usage: jsondoc [flags] <json file path>...")
		return exitUsage
	}

	pool, err := ants.NewPool(e.cfg.Workers)
	if err != nil {
		fmt.Fprintf(e.stderr, "error: %v\n", err)
		return exitUsage
	}
	defer pool.Release()

	results := make([]timing, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = inspect(e, path)
		}); err != nil {
			wg.Done()
			results[i] = timing{path: path, code: exitFailed, err: errors.Wrap(err, "schedule")}
		}
	}
	wg.Wait()

	code := exitOK
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(e.stderr, "error: %v\n", r.err)
			if code == exitOK {
				code = r.code
			}
			continue
		}
		prefix := ""
		if len(paths) > 1 {
			prefix = "file=" + r.path + " "
		}
		fmt.Fprintf(e.stdout, "%sparse_time=%fs\n", prefix, r.parse.Seconds())
		fmt.Fprintf(e.stdout, "%sformat_time=%fs\n", prefix, r.format.Seconds())
		fmt.Fprintf(e.stdout, "%scleanup_time=%fs\n", prefix, r.cleanup.Seconds())
	}
	return code
}

// inspect parses path into a fresh arena, serializes the result and frees
// it, timing each step.
func inspect(e *env, path string) timing {
	r := timing{path: path}
	logger := log.With(e.logger, "file", path)

	data, code, err := readInput(e, path)
	if err != nil {
		r.code, r.err = code, err
		return r
	}
	r.size = len(data)

	arena := allocator.NewArena(int(e.cfg.PoolSize.Bytes()))
	defer arena.Free()
	alloc := e.metrics.Instrument(arena)

	opts := e.cfg.readerOptions()
	if e.cfg.Trace {
		opts = append(opts, reader.WithLogger(logger))
	}

	start := time.Now()
	v, err := reader.New(alloc, opts...).Parse(data)
	r.parse = time.Since(start)
	if err != nil {
		r.code, r.err = exitFailed, errors.Wrapf(err, "could not parse json in '%s'", path)
		return r
	}

	start = time.Now()
	text, err := writer.Serialize(v, alloc)
	r.format = time.Since(start)
	if err != nil {
		v.Free()
		r.code, r.err = exitFailed, errors.Wrapf(err, "could not format json from '%s'", path)
		return r
	}
	alloc.Deallocate(text)
	r.used = arena.Used()

	start = time.Now()
	v.Free()
	r.cleanup = time.Since(start)

	level.Debug(logger).Log("msg", "inspected", "bytes", r.size, "arena_used", r.used, "parse", r.parse, "format", r.format, "cleanup", r.cleanup)
	return r
}
