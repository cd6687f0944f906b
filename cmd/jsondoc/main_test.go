package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/jsondoc/reader"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestInspect(t *testing.T) {
	good := writeFile(t, "good.json", `{"a": [1, 2, 3], "b": {"c": null}}`)
	bad := writeFile(t, "bad.json", `{"a": [1, 2,]}`)

	code, out, _ := runCLI("", good)
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "parse_time="))
	assert.True(t, strings.HasPrefix(lines[1], "format_time="))
	assert.True(t, strings.HasPrefix(lines[2], "cleanup_time="))

	code, _, _ = runCLI("")
	assert.Equal(t, exitUsage, code)

	code, _, errOut := runCLI("", filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, exitMissing, code)
	assert.Contains(t, errOut, "does not exist")

	code, _, errOut = runCLI("", bad)
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, errOut, "could not parse json")

	code, _, _ = runCLI("", "-arena.size=64B", good)
	assert.Equal(t, exitFailed, code, "arena too small for the document")
}

func TestInspectMany(t *testing.T) {
	var paths []string
	for _, doc := range []string{`[]`, `{"x": "y"}`, `"z"`, `[[[]]]`, `true`} {
		paths = append(paths, writeFile(t, "doc.json", doc))
	}
	code, out, _ := runCLI("", append([]string{"-workers=2"}, paths...)...)
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3*len(paths))
	for i, path := range paths {
		assert.True(t, strings.HasPrefix(lines[3*i], "file="+path+" parse_time="), lines[3*i])
	}
}

func TestInspectTrace(t *testing.T) {
	path := writeFile(t, "doc.json", `[1]`)
	code, _, errOut := runCLI("", "-trace", "-log.level=debug", path)
	require.Equal(t, exitOK, code)
	assert.Equal(t, 3, strings.Count(errOut, "msg=token"))
	assert.Contains(t, errOut, "metric=jsondoc_allocator_requests_total")
}

func TestGen(t *testing.T) {
	code, first, _ := runCLI("", "gen", "-seed=9", "-count=5")
	require.Equal(t, exitOK, code)
	_, second, _ := runCLI("", "gen", "-seed=9", "-count=5")
	assert.Equal(t, first, second)

	docs := strings.Split(strings.TrimSuffix(first, "\n"), "\n")
	require.Len(t, docs, 5)
	for _, doc := range docs {
		assert.True(t, reader.Valid([]byte(doc)), doc)
	}

	code, out, _ := runCLI("", "gen", "-record", "-indent=  ")
	require.Equal(t, exitOK, code)
	assert.True(t, reader.Valid([]byte(out)))
	assert.Contains(t, out, "\n  \"")
}

func TestFmt(t *testing.T) {
	path := writeFile(t, "doc.json", `{"a":[1.5,true]}`)
	code, out, _ := runCLI("", "fmt", path)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "{\n  \"a\": [\n    1.5,\n    true\n  ]\n}\n", out)

	code, out, _ = runCLI(`[2]`, "fmt", "-indent=", "-shortest=false", "-")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "[2.000000]\n", out)

	code, _, _ = runCLI(`[`, "fmt", "-")
	assert.Equal(t, exitFailed, code)
}

func TestEval(t *testing.T) {
	path := writeFile(t, "order.json", `{"price": 2.5, "qty": 4, "tags": ["a", "b"]}`)
	code, out, _ := runCLI("", "eval", "price * qty", path)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "10\n", out)

	code, out, _ = runCLI(`[1, 2]`, "eval", "len(value)", "-")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "2\n", out)

	code, _, _ = runCLI("", "eval", "price")
	assert.Equal(t, exitUsage, code)
}
