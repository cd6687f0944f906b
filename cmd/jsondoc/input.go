package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// readInput loads path, or standard input for "-", and returns the exit code
// that fits when it cannot.
func readInput(e *env, path string) ([]byte, int, error) {
	if path == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return nil, exitUnreadable, errors.Wrap(err, "could not read standard input")
		}
		return data, exitOK, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, exitMissing, errors.Errorf("file '%s' does not exist", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exitUnreadable, errors.Wrapf(err, "could not open '%s'", path)
	}
	return data, exitOK, nil
}
