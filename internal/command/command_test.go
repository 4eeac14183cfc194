package command

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"look/internal/config"
	"look/internal/errors"
	"look/internal/log"
	"look/internal/search"
	"look/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	stderr []byte
	err    error
	calls  []call
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.stderr, f.err
}

func newDispatcher(r Runner, opts ...Option) *Dispatcher {
	quiet := log.NewLogger(log.WithOutput(&bytes.Buffer{}))
	return New(append([]Option{WithRunner(r), WithLogger(quiet)}, opts...)...)
}

func fileRecord(path string) *search.MatchRecord {
	return &search.MatchRecord{Path: path, Text: path}
}

func TestDispatchQuit(t *testing.T) {
	runner := &fakeRunner{}
	d := newDispatcher(runner)

	for _, sel := range []*search.MatchRecord{nil, fileRecord("a.txt")} {
		out := d.Dispatch("quit", sel)
		assert.Equal(t, Exit, out.Kind)
		assert.True(t, out.Exit)
		assert.False(t, out.HasOutput)
	}
	assert.Empty(t, runner.calls)
}

func TestDispatchUnknownIsNoOp(t *testing.T) {
	runner := &fakeRunner{}
	d := newDispatcher(runner)

	for _, text := range []string{"", "hello", "QUIT", "code now", "cdd"} {
		out := d.Dispatch(text, fileRecord("a.txt"))
		assert.Equal(t, Outcome{Kind: NoOp}, out, text)
	}
	assert.Empty(t, runner.calls)
}

func TestDispatchPrefix(t *testing.T) {
	d := newDispatcher(&fakeRunner{})
	assert.True(t, d.Dispatch(":quit", nil).Exit)

	for _, text := range []string{" quit", "quit\t", " :quit ", "::quit", ": quit"} {
		assert.Equal(t, Outcome{Kind: NoOp}, d.Dispatch(text, nil), "%q", text)
	}
}

func TestDispatchNeedsSelection(t *testing.T) {
	runner := &fakeRunner{}
	d := newDispatcher(runner)

	assert.Equal(t, NoOp, d.Dispatch("code", nil).Kind)
	assert.Equal(t, NoOp, d.Dispatch("cd", nil).Kind)
	assert.Empty(t, runner.calls)
}

func TestDispatchCode(t *testing.T) {
	t.Run("launches editor on path", func(t *testing.T) {
		runner := &fakeRunner{}
		d := newDispatcher(runner)

		out := d.Dispatch("code", fileRecord("sub/ab.txt"))
		require.Len(t, runner.calls, 1)
		assert.Equal(t, config.DefaultEditor, runner.calls[0].name)
		assert.Equal(t, []string{"sub/ab.txt"}, runner.calls[0].args)

		assert.Equal(t, OpenEditor, out.Kind)
		assert.False(t, out.HasOutput, "silent editor leaves the last output alone")
		assert.Empty(t, out.Output)
		assert.False(t, out.Exit)
	})

	t.Run("editor words become arguments", func(t *testing.T) {
		runner := &fakeRunner{}
		d := newDispatcher(runner, WithEditor("vim -R"))

		d.Dispatch("code", fileRecord("notes.md"))
		require.Len(t, runner.calls, 1)
		assert.Equal(t, "vim", runner.calls[0].name)
		assert.Equal(t, []string{"-R", "notes.md"}, runner.calls[0].args)
	})

	t.Run("stderr becomes output", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("warning: \xffodd\n")}
		d := newDispatcher(runner)

		out := d.Dispatch("code", fileRecord("a.txt"))
		assert.Equal(t, "warning: \uFFFDodd", out.Output)
		assert.True(t, out.HasOutput)
		assert.False(t, out.Exit)
	})

	t.Run("trailing newlines only count as empty", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("\r\n")}
		d := newDispatcher(runner)

		out := d.Dispatch("code", fileRecord("a.txt"))
		assert.False(t, out.HasOutput)
	})

	t.Run("exit after editor diagnostics", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("boom")}
		d := newDispatcher(runner, WithExitAfterEditor(true))
		assert.True(t, d.Dispatch("code", fileRecord("a.txt")).Exit)

		runner.stderr = nil
		assert.False(t, d.Dispatch("code", fileRecord("a.txt")).Exit)
	})

	t.Run("spawn failure", func(t *testing.T) {
		runner := &fakeRunner{err: errors.NewCommandError("failed to start", "code", os.ErrNotExist)}
		d := newDispatcher(runner, WithExitAfterEditor(true))

		out := d.Dispatch("code", fileRecord("a.txt"))
		assert.Equal(t, OpenEditor, out.Kind)
		assert.Equal(t, EditorFailureMessage, out.Output)
		assert.True(t, out.HasOutput)
		assert.False(t, out.Exit)
	})
}

func TestDispatchChangeDirectory(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTree(t, root, "sub/", "sub/ab.txt", "top.txt")
	testutils.Chdir(t, root)

	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name   string
		record search.MatchRecord
		want   string
	}{
		{"file uses parent", search.MatchRecord{Path: filepath.Join("sub", "ab.txt")}, filepath.Join(wd, "sub")},
		{"directory is itself", search.MatchRecord{Path: "sub", IsDir: true}, filepath.Join(wd, "sub")},
		{"file without parent", search.MatchRecord{Path: "top.txt"}, wd},
		{"absolute path kept", search.MatchRecord{Path: filepath.Join(root, "sub"), IsDir: true}, filepath.Join(root, "sub")},
	}

	runner := &fakeRunner{}
	d := newDispatcher(runner)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.record
			out := d.Dispatch("cd", &record)
			assert.Equal(t, ChangeDirectoryPrint, out.Kind)
			assert.True(t, out.Exit)
			assert.True(t, out.HasOutput)
			assert.Equal(t, tt.want, out.Output)
			assert.True(t, filepath.IsAbs(out.Output))
		})
	}
	assert.Empty(t, runner.calls)
}

func TestExecRunner(t *testing.T) {
	t.Run("missing program", func(t *testing.T) {
		_, err := ExecRunner{}.Run(filepath.Join(t.TempDir(), "no-such-editor"))
		require.Error(t, err)
		assert.True(t, errors.IsCommandFailed(err))
	})

	t.Run("captures stderr", func(t *testing.T) {
		sh, err := exec.LookPath("sh")
		if err != nil {
			t.Skip("no sh available")
		}
		stderr, err := ExecRunner{}.Run(sh, "-c", "echo oops >&2; exit 3")
		require.NoError(t, err)
		assert.Equal(t, "oops\n", string(stderr))
	})
}

func TestFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Editor = "nano"
	cfg.ExitAfterEditor = true

	runner := &fakeRunner{stderr: []byte("x")}
	d := newDispatcher(runner, FromConfig(cfg)...)
	out := d.Dispatch("code", fileRecord("f"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "nano", runner.calls[0].name)
	assert.True(t, out.Exit)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "noop", NoOp.String())
	assert.Equal(t, "exit", Exit.String())
	assert.Equal(t, "open-editor", OpenEditor.String())
	assert.Equal(t, "cd", ChangeDirectoryPrint.String())
}
