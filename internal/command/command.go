// Package command interprets the text submitted from the navigator's command
// line and performs the matching action.
package command

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"

	"look/internal/config"
	"look/internal/errors"
	"look/internal/log"
	"look/internal/search"
)

// Recognised commands.
const (
	Quit   = "quit"
	Code   = "code"
	ChDir  = "cd"
	Prefix = ":"
)

// EditorFailureMessage is shown when the editor could not be started.
const EditorFailureMessage = "failed to launch editor"

// Kind identifies what a dispatch did.
type Kind int

const (
	NoOp Kind = iota
	Exit
	OpenEditor
	ChangeDirectoryPrint
)

func (k Kind) String() string {
	switch k {
	case Exit:
		return "exit"
	case OpenEditor:
		return "open-editor"
	case ChangeDirectoryPrint:
		return "cd"
	default:
		return "noop"
	}
}

// Outcome is the effect of one dispatched command on the navigator.
type Outcome struct {
	Kind Kind
	// Output replaces the navigator's last output when HasOutput is set.
	Output    string
	HasOutput bool
	Exit      bool
}

// Runner starts an external program, waits for it and returns what it wrote
// to stderr. An error means the program could not be started at all.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run implements Runner. A non-zero exit status is not an error: the process
// was spawned and its stderr is the diagnostic.
func (ExecRunner) Run(name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.NewCommandError("failed to start", name, err)
	}
	if err := cmd.Wait(); err != nil {
		log.LogWithError(err).With(log.F("command", name)).Debug("process exited with error")
	}
	return stderr.Bytes(), nil
}

// Dispatcher maps command text to actions.
type Dispatcher struct {
	editor          []string
	exitAfterEditor bool
	runner          Runner
	logger          *log.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithEditor sets the editor command line; extra words become arguments
// placed before the path.
func WithEditor(editor string) Option {
	return func(d *Dispatcher) {
		if fields := strings.Fields(editor); len(fields) > 0 {
			d.editor = fields
		}
	}
}

// WithExitAfterEditor makes a successful editor launch that printed
// diagnostics end the session.
func WithExitAfterEditor(exit bool) Option {
	return func(d *Dispatcher) {
		d.exitAfterEditor = exit
	}
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(d *Dispatcher) {
		d.runner = r
	}
}

// WithLogger directs dispatch diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// FromConfig returns the options cfg implies.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithEditor(cfg.Editor),
		WithExitAfterEditor(cfg.ExitAfterEditor),
	}
}

// New creates a Dispatcher launching the default editor.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		editor: []string{config.DefaultEditor},
		runner: ExecRunner{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs text against the selected record. It blocks until any
// launched process exits. Text is compared literally after dropping one
// leading ":". Unknown text, or an action that needs a record when none is
// selected, is a no-op.
func (d *Dispatcher) Dispatch(text string, selected *search.MatchRecord) Outcome {
	text = strings.TrimPrefix(text, Prefix)

	var out Outcome
	switch {
	case text == Quit:
		out = Outcome{Kind: Exit, Exit: true}
	case text == Code && selected != nil:
		out = d.openEditor(selected)
	case text == ChDir && selected != nil:
		out = d.changeDirectory(selected)
	default:
		out = Outcome{Kind: NoOp}
	}

	d.logger.With(log.F("command", text), log.F("outcome", out.Kind.String()), log.F("exit", out.Exit)).
		Debug("dispatched")
	return out
}

func (d *Dispatcher) openEditor(selected *search.MatchRecord) Outcome {
	args := append(append([]string{}, d.editor[1:]...), selected.Path)
	stderr, err := d.runner.Run(d.editor[0], args...)
	if err != nil {
		d.logger.WithError(err).Warn("editor launch failed")
		return Outcome{Kind: OpenEditor, Output: EditorFailureMessage, HasOutput: true}
	}

	output := strings.TrimRight(strings.ToValidUTF8(string(stderr), "\uFFFD"), "\r\n")
	return Outcome{
		Kind:      OpenEditor,
		Output:    output,
		HasOutput: output != "",
		Exit:      d.exitAfterEditor && output != "",
	}
}

func (d *Dispatcher) changeDirectory(selected *search.MatchRecord) Outcome {
	dir := EffectiveDir(*selected)
	return Outcome{Kind: ChangeDirectoryPrint, Output: dir, HasOutput: true, Exit: true}
}

// EffectiveDir returns the directory a shell should change into for r: the
// record itself when it is a directory, otherwise its parent. The result is
// absolute when the working directory is known.
func EffectiveDir(r search.MatchRecord) string {
	dir := r.Path
	if !r.IsDir {
		dir = filepath.Dir(r.Path)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
