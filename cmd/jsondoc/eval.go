package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/oarkflow/jsondoc/compat"
	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/writer"
)

func setupEval(*flag.FlagSet) runner {
	return func(e *env, args []string) int {
		if len(args) != 2 {
			fmt.Fprintln(e.stderr, "usage: jsondoc eval [flags] <expr> <file|->")
			return exitUsage
		}
		expression, path := args[0], args[1]
		data, code, err := readInput(e, path)
		if err != nil {
			fmt.Fprintf(e.stderr, "error: %v\n", err)
			return code
		}
		alloc := e.metrics.Instrument(nil)
		doc, err := reader.Parse(data, alloc, e.cfg.readerOptions()...)
		if err != nil {
			fmt.Fprintf(e.stderr, "error: %v\n", errors.Wrapf(err, "could not parse json in '%s'", path))
			return exitFailed
		}
		defer doc.Free()

		result, err := compat.EvalValue(expression, doc, alloc)
		if err != nil {
			fmt.Fprintf(e.stderr, "error: %v\n", err)
			return exitFailed
		}
		defer result.Free()
		if err := emit(e.stdout, result, []writer.Option{writer.WithNumberFormat(writer.NumberShortest)}); err != nil {
			fmt.Fprintf(e.stderr, "error: %v\n", err)
			return exitFailed
		}
		return exitOK
	}
}
