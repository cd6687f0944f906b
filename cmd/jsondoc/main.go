// Command jsondoc parses, formats, generates and queries JSON documents with
// the arena-backed reader and writer.
//
// Without a subcommand every argument names a file that is parsed into its
// own arena, serialized and freed, with the time each step took printed in
// the order the files were given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oarkflow/jsondoc/allocator"
)

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitMissing
	exitUnreadable
	exitFailed
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type runner func(e *env, args []string) int

// A command registers its own flags and returns the function that runs it.
type command struct {
	name  string
	usage string
	setup func(f *flag.FlagSet) runner
}

var commands = []command{
	{"gen", "gen [flags]                  print random documents", setupGen},
	{"fmt", "fmt [flags] <file|->...      reformat documents", setupFmt},
	{"eval", "eval [flags] <expr> <file|-> evaluate an expression against a document", setupEval},
}

// env carries what every subcommand shares once flags are parsed.
type env struct {
	cfg     *Config
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  log.Logger
	metrics *allocator.Metrics
	reg     *prometheus.Registry
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	name, setup := "inspect", setupInspect
	if len(args) > 0 {
		for _, c := range commands {
			if args[0] == c.name {
				name, setup = c.name, c.setup
				args = args[1:]
				break
			}
		}
	}

	f := flag.NewFlagSet("jsondoc "+name, flag.ContinueOnError)
	f.SetOutput(stderr)
	f.Usage = func() {
		fmt.Fprintf(stderr, "usage: jsondoc [flags] <json file path>...\n")
		for _, c := range commands {
			fmt.Fprintf(stderr, "       jsondoc %s\n", c.usage)
		}
		f.PrintDefaults()
	}

	fn := setup(f)
	cfg, err := parseConfig(f, args)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return exitUsage
	}

	reg := prometheus.NewRegistry()
	e := &env{
		cfg:     cfg,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  newLogger(stderr, cfg.LogLevel),
		metrics: allocator.NewMetrics(reg),
		reg:     reg,
	}
	code := fn(e, f.Args())
	e.logMetrics()
	return code
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(lvl, level.InfoValue())))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// logMetrics reports the allocator counters gathered during the run.
func (e *env) logMetrics() {
	families, err := e.reg.Gather()
	if err != nil {
		level.Warn(e.logger).Log("msg", "failed to gather metrics", "err", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			kvs := []any{"msg", "allocator stats", "metric", mf.GetName()}
			for _, lp := range m.GetLabel() {
				kvs = append(kvs, lp.GetName(), lp.GetValue())
			}
			kvs = append(kvs, "value", m.GetCounter().GetValue())
			level.Debug(e.logger).Log(kvs...)
		}
	}
}
