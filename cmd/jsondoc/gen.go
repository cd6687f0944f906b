package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/oarkflow/jsondoc/fake"
	"github.com/oarkflow/jsondoc/value"
	"github.com/oarkflow/jsondoc/writer"
)

func setupGen(f *flag.FlagSet) runner {
	var (
		seed   = f.Int64("seed", 1, "Seed for the generator. The same seed always prints the same documents.")
		count  = f.Int("count", 1, "Number of documents to print.")
		record = f.Bool("record", false, "Print record-shaped objects instead of arbitrary values.")
		depth  = f.Int("depth", 4, "Maximum nesting depth of arbitrary values.")
		width  = f.Int("width", 6, "Maximum number of elements per array or object.")
		indent = f.String("indent", "", "Indent string. Empty prints one document per line.")
	)
	return func(e *env, args []string) int {
		if len(args) != 0 || *count < 0 {
			fmt.Fprintln(e.stderr, "usage: jsondoc gen [flags]")
			return exitUsage
		}
		g := fake.New(*seed, e.metrics.Instrument(nil))
		g.MaxDepth, g.MaxWidth = *depth, *width

		opts := []writer.Option{writer.WithNumberFormat(writer.NumberShortest)}
		if *indent != "" {
			opts = append(opts, writer.WithIndent("", *indent))
		}
		for i := 0; i < *count; i++ {
			var v *value.Value
			var err error
			if *record {
				v, err = g.Record()
			} else {
				v, err = g.Value()
			}
			if err == nil {
				err = emit(e.stdout, v, opts)
				v.Free()
			}
			if err != nil {
				fmt.Fprintf(e.stderr, "error: %v\n", err)
				return exitFailed
			}
		}
		return exitOK
	}
}

// emit writes v and a trailing newline.
func emit(w io.Writer, v *value.Value, opts []writer.Option) error {
	if err := writer.Fprint(w, v, nil, opts...); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
