package cli

// Test Plan for Scan Command:
// - scan prints the text tree for a configured multi-folder workspace
// - scan falls back to the workspace root as the only folder
// - scan --format json overrides the configured format
// - configured output format is used when no flag is given
// - scan --symbol and --folder filter the printed tree
// - scan --quiet suppresses progress output; otherwise a summary is printed
// - scan reports invalid configuration and unknown formats as errors
// - scan of a workspace without AL files prints the empty message
// - scan of testdata/workspace prints the expected tree

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/preproc-explorer/internal/tree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupWorkspace creates a two-folder AL workspace with a config file.
func setupWorkspace(t *testing.T, extraConfig string) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, ".preproc", "config.yml"), `
folders:
  - name: Base
    path: base
  - name: Test
    path: test
`+extraConfig)

	writeFile(t, filepath.Join(root, "base", "Customer.Table.al"), "table 18 Customer\n{\n#if CLEAN24\n#endif\n}\n")
	writeFile(t, filepath.Join(root, "base", "Post.Codeunit.al"), "codeunit 80 Post\n#define CLEAN24\n")
	writeFile(t, filepath.Join(root, "test", "PostTest.Codeunit.al"), "codeunit 134 PostTest\n\n// #if IGNORED\n#ifdef DEBUG\n")

	return root
}

func runTestScan(t *testing.T, opts scanOptions) (string, string, error) {
	t.Helper()
	opts.logger = zerolog.Nop()
	var out, errOut bytes.Buffer
	err := scan(context.Background(), opts, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestScan_TextOutput(t *testing.T) {
	root := setupWorkspace(t, "")

	out, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true})
	require.NoError(t, err)

	base := filepath.Join(root, "base")
	want := "Base\n" +
		"  #CLEAN24\n" +
		"    Post.Codeunit.al [Codeunit]\n" +
		"      Line 2  " + filepath.Join(base, "Post.Codeunit.al") + ":2\n" +
		"    Customer.Table.al [Table]\n" +
		"      Line 3  " + filepath.Join(base, "Customer.Table.al") + ":3\n" +
		"Test\n" +
		"  #DEBUG\n" +
		"    PostTest.Codeunit.al [Codeunit]\n" +
		"      Line 4  " + filepath.Join(root, "test", "PostTest.Codeunit.al") + ":4\n"
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "IGNORED")
}

func TestScan_DefaultFolderIsRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "A.al"), "table 1 A\n#define X\n")

	out, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true, format: "json"})
	require.NoError(t, err)

	var roots []*tree.Node
	require.NoError(t, json.Unmarshal([]byte(out), &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, filepath.Base(root), roots[0].Name)
}

func TestScan_FormatFlagOverridesConfig(t *testing.T) {
	root := setupWorkspace(t, "output:\n  format: yaml\n")

	out, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true, format: "json"})
	require.NoError(t, err)

	var roots []*tree.Node
	require.NoError(t, json.Unmarshal([]byte(out), &roots))
	require.Len(t, roots, 2)
	assert.Equal(t, "Base", roots[0].Name)
	assert.Equal(t, "Test", roots[1].Name)
}

func TestScan_ConfiguredFormat(t *testing.T) {
	root := setupWorkspace(t, "output:\n  format: yaml\n")

	out, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true})
	require.NoError(t, err)
	assert.Contains(t, out, "kind: folder")
	assert.Contains(t, out, "name: CLEAN24")
}

func TestScan_Filters(t *testing.T) {
	root := setupWorkspace(t, "")

	out, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true, symbol: "DEBUG"})
	require.NoError(t, err)
	assert.Contains(t, out, "#DEBUG")
	assert.NotContains(t, out, "#CLEAN24")

	out, _, err = runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true, folder: "base"})
	require.NoError(t, err)
	assert.Contains(t, out, "#CLEAN24")
	assert.NotContains(t, out, "#DEBUG")
}

func TestScan_ProgressOutput(t *testing.T) {
	root := setupWorkspace(t, "")

	_, errOut, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true})
	require.NoError(t, err)
	assert.Empty(t, errOut)

	_, errOut, err = runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}})
	require.NoError(t, err)
	assert.Contains(t, errOut, "Scanning 3 AL files")
	assert.Contains(t, errOut, "✓ Scan complete: 2 symbols, 3 occurrences")
}

func TestScan_Errors(t *testing.T) {
	root := setupWorkspace(t, "scan:\n  concurrency: 0\n")
	_, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")

	root = setupWorkspace(t, "")
	_, _, err = runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true, format: "xml"})
	assert.Error(t, err)

	_, _, err = runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root, configFile: filepath.Join(root, "missing.yml")}, quiet: true})
	assert.Error(t, err)
}

func TestScan_EmptyWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "#define NOT_AL\n")

	out, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true})
	require.NoError(t, err)
	assert.Equal(t, "No preprocessor symbols found.\n", out)
}

func TestScan_SampleWorkspace(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "workspace"))
	require.NoError(t, err)

	out, _, err := runTestScan(t, scanOptions{sessionOptions: sessionOptions{root: root}, quiet: true})
	require.NoError(t, err)

	src := filepath.Join(root, "base", "src")
	post := filepath.Join(src, "SalesPost.Codeunit.al")
	want := "Base Application\n" +
		"  #CLEAN24\n" +
		"    SalesPost.Codeunit.al [Codeunit]\n" +
		"      Line 3  " + post + ":3\n" +
		"      Line 7  " + post + ":7\n" +
		"      Line 9  " + post + ":9\n" +
		"    Customer.Table.al [Table]\n" +
		"      Line 6  " + filepath.Join(src, "Customer.Table.al") + ":6\n" +
		"  #DEBUG\n" +
		"    SalesPost.Codeunit.al [Codeunit]\n" +
		"      Line 7  " + post + ":7\n" +
		"    Status.Enum.al [Enum]\n" +
		"      Line 3  " + filepath.Join(src, "Status.Enum.al") + ":3\n" +
		"  #TRACE\n" +
		"    SalesPost.Codeunit.al [Codeunit]\n" +
		"      Line 7  " + post + ":7\n" +
		"Test Application\n" +
		"  #TRACE\n" +
		"    SalesPostTest.Codeunit.al [Codeunit]\n" +
		"      Line 5  " + filepath.Join(root, "test", "src", "SalesPostTest.Codeunit.al") + ":5\n"
	assert.Equal(t, want, out)
}
