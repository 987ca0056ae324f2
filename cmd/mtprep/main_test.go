package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	corpus string
	hyps   string
	root   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("ENV_PATH", "")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("EXPORTERS", "")
	t.Setenv("OUTPUT_ROOT", "")
	t.Chdir(t.TempDir())

	dir := t.TempDir()
	f := fixture{
		corpus: filepath.Join(dir, "corpus.jsonl"),
		hyps:   filepath.Join(dir, "hyp.jsonl"),
		root:   filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(f.corpus, []byte(
		`{"doc_id":"en-ja_JP_#1","src_text":"Hello.\n\nWorld.","refs":{"refA":{"ref":"A.\n\nB."}}}`+"\n"), 0o644))
	require.NoError(t, os.WriteFile(f.hyps, []byte(
		`{"doc_id":"en-ja_JP_#1","hypothesis":"こんにちは。\n\n世界。"}`+"\n"+
			`{"doc_id":"en-ja_JP_#1","hypothesis":"FAILED: timeout"}`+"\n"), 0o644))
	return f
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(t.Context(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestPrepare(t *testing.T) {
	f := newFixture(t)

	code, out, errOut := execute(t, "prepare", "--corpus", f.corpus, "--hypotheses", f.hyps, "--output-root", f.root)
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Total hypothesis lines: 2\n")
	assert.Contains(t, out, "Built segments: 2  | skipped FAILED: 1\n")
	assert.FileExists(t, filepath.Join(f.root, "en-ja_JP", "raw", "segments.jsonl"))
	assert.FileExists(t, filepath.Join(f.root, "en-ja_JP", "gemba", "hyp.txt"))
	assert.FileExists(t, filepath.Join(f.root, "en-ja_JP", "manifest.json"))

	code, out, _ = execute(t, "verify", "en-ja_JP", "--output-root", f.root)
	assert.Equal(t, 0, code)
	assert.Equal(t, "en-ja_JP: 5 files OK\n", out)

	code, out, _ = execute(t, "inspect", "en-ja_JP", "--output-root", f.root)
	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"en-ja_JP", "2", "yes", "6.00", "4.50"}, strings.Fields(lines[2]))
}

func TestPrepare_IsDefaultCommand(t *testing.T) {
	f := newFixture(t)

	code, out, errOut := execute(t, "--corpus", f.corpus, "--hypotheses", f.hyps, "--output-root", f.root, "--exporters", "gemba", "--no-manifest")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Saving to ")
	assert.NoDirExists(t, filepath.Join(f.root, "en-ja_JP", "raw"))
	assert.NoFileExists(t, filepath.Join(f.root, "en-ja_JP", "manifest.json"))
}

func TestPrepare_RunFile(t *testing.T) {
	f := newFixture(t)
	runFile := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(runFile, []byte(`
kind: ScorePrep
version: v1
metadata:
  name: en-ja
corpus: `+f.corpus+`
hypotheses: `+f.hyps+`
outputRoot: `+f.root+`
exporters: [metricx-24]
storage: in_mem
`), 0o644))

	code, out, errOut := execute(t, "prepare", "--config", runFile, "--json")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, `"stored": true`)
	assert.FileExists(t, filepath.Join(f.root, "en-ja_JP", "metricx-24", "segments.jsonl"))
	assert.NoDirExists(t, filepath.Join(f.root, "en-ja_JP", "xcomet-xl"))
}

func TestPrepare_FlagOverridesEnv(t *testing.T) {
	f := newFixture(t)
	t.Setenv("EXPORTERS", "raw")
	t.Setenv("OUTPUT_ROOT", filepath.Join(t.TempDir(), "ignored"))

	code, _, errOut := execute(t, "prepare", "--corpus", f.corpus, "--hypotheses", f.hyps, "--output-root", f.root)
	require.Equal(t, 0, code, errOut)

	assert.DirExists(t, filepath.Join(f.root, "en-ja_JP", "raw"))
	assert.NoDirExists(t, filepath.Join(f.root, "en-ja_JP", "gemba"))
}

func TestPrepare_Errors(t *testing.T) {
	f := newFixture(t)

	t.Run("unknown exporter", func(t *testing.T) {
		code, _, _ := execute(t, "prepare", "--corpus", f.corpus, "--hypotheses", f.hyps, "--output-root", f.root, "--exporters", "bleu")
		assert.Equal(t, 2, code)
	})

	t.Run("unknown storage", func(t *testing.T) {
		code, _, _ := execute(t, "prepare", "--corpus", f.corpus, "--hypotheses", f.hyps, "--storage", "solr")
		assert.Equal(t, 2, code)
	})

	t.Run("missing corpus", func(t *testing.T) {
		code, _, errOut := execute(t, "prepare", "--corpus", filepath.Join(t.TempDir(), "nope.jsonl"), "--hypotheses", f.hyps)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "Error:")
	})
}

func TestPairs(t *testing.T) {
	newFixture(t)

	code, out, _ := execute(t, "pairs")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "en-ja_JP\n")
	assert.Contains(t, out, "en-sr_Cyrl_RS\n")
}

func TestInspect_InvalidArguments(t *testing.T) {
	newFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no pair", args: []string{"inspect"}, want: "expected a single argument 'language pair'"},
		{name: "two pairs", args: []string{"inspect", "en-ja_JP", "en-de_DE"}, want: "expected a single argument 'language pair'"},
		{name: "unknown pair", args: []string{"inspect", "xx-yy"}, want: "argument 'xx-yy' is not a recognized language pair"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestVerify_DetectsChanges(t *testing.T) {
	f := newFixture(t)
	code, _, errOut := execute(t, "prepare", "--corpus", f.corpus, "--hypotheses", f.hyps, "--output-root", f.root)
	require.Equal(t, 0, code, errOut)

	require.NoError(t, os.WriteFile(filepath.Join(f.root, "en-ja_JP", "gemba", "src.txt"), []byte("changed"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(f.root, "en-ja_JP", "raw", "segments.jsonl")))

	code, out, _ := execute(t, "verify", "en-ja_JP", "--output-root", f.root)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "gemba/src.txt")
	assert.Contains(t, out, "raw/segments.jsonl")
	assert.Contains(t, out, "missing")
}

func TestVerify_RejectsEscapingPair(t *testing.T) {
	newFixture(t)

	code, _, _ := execute(t, "verify", "..", "--output-root", t.TempDir())
	assert.Equal(t, 2, code)
}

func TestSchema(t *testing.T) {
	newFixture(t)

	code, out, _ := execute(t, "schema")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"title": "ScorePrep"`)
	assert.Contains(t, out, `"outputRoot"`)

	code, out, _ = execute(t, "schema", "--example")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "kind: ScorePrep\n"))

	dir := filepath.Join(t.TempDir(), "api")
	code, out, _ = execute(t, "schema", "--output", dir)
	require.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(dir, "scoreprep-v1.json"))
	assert.FileExists(t, filepath.Join(dir, "scoreprep-example.yaml"))
	assert.Equal(t, 2, strings.Count(out, "Generated "))
}
