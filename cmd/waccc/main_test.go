package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "prog.wacc")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_SuccessProducesAssembly(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "begin int x = 3 ; exit x end")
	assert.Equal(t, exitOK, run([]string{src}))
	out, err := os.ReadFile(defaultOutputPath(src))
	assert.NoError(t, err)
	assert.Contains(t, string(out), "main:")
}

func TestRun_SyntaxErrorExits100(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "begin int x = end")
	assert.Equal(t, exitSyntax, run([]string{src}))
}

func TestRun_SemanticErrorExits200(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "begin int x = true end")
	assert.Equal(t, exitSemantic, run([]string{src}))
}

func TestRun_MissingFileExitsUsage(t *testing.T) {
	assert.Equal(t, exitUsage, run([]string{"/no/such/file.wacc"}))
}

func TestRun_WrongArgCountExitsUsage(t *testing.T) {
	assert.Equal(t, exitUsage, run(nil))
	assert.Equal(t, exitUsage, run([]string{"a", "b"}))
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "foo.s", defaultOutputPath("foo.wacc"))
	assert.Equal(t, "dir/foo.s", defaultOutputPath("dir/foo.wacc"))
	assert.Equal(t, "noext.s", defaultOutputPath("noext"))
}
