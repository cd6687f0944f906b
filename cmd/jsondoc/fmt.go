package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/writer"
)

func setupFmt(f *flag.FlagSet) runner {
	var (
		indent   = f.String("indent", "  ", "Indent string. Empty prints the compact form.")
		prefix   = f.String("prefix", "", "Prefix for every line after the first when indenting.")
		shortest = f.Bool("shortest", true, "Print numbers with the fewest digits that read back exactly instead of six decimals.")
	)
	return func(e *env, paths []string) int {
		if len(paths) == 0 {
			fmt.Fprintln(e.stderr, "usage: jsondoc fmt [flags] <file|->...")
			return exitUsage
		}
		opts := []writer.Option{writer.WithIndent(*prefix, *indent)}
		if *shortest {
			opts = append(opts, writer.WithNumberFormat(writer.NumberShortest))
		}
		alloc := e.metrics.Instrument(nil)
		for _, path := range paths {
			data, code, err := readInput(e, path)
			if err != nil {
				fmt.Fprintf(e.stderr, "error: %v\n", err)
				return code
			}
			v, err := reader.Parse(data, alloc, e.cfg.readerOptions()...)
			if err != nil {
				fmt.Fprintf(e.stderr, "error: %v\n", errors.Wrapf(err, "could not parse json in '%s'", path))
				return exitFailed
			}
			err = emit(e.stdout, v, opts)
			v.Free()
			if err != nil {
				fmt.Fprintf(e.stderr, "error: %v\n", err)
				return exitFailed
			}
		}
		return exitOK
	}
}
