package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"look/internal/command"
	"look/internal/config"
	"look/internal/errors"
	"look/internal/log"
	"look/internal/search"
	"look/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const noResults = "No results found."

// Long flags that may also be written with a single dash.
var singleDashFlags = map[string]bool{
	"all":    true,
	"case":   true,
	"dir":    true,
	"file":   true,
	"path":   true,
	"config":   true,
	"debug":    true,
	"json-log": true,
}

type options struct {
	all           bool
	caseSensitive bool
	dirs          bool
	files         bool
	root          string
	configPath    string
	debug         bool
	jsonLog       bool
}

// logOptions returns the logger settings shared by every phase of a run.
func (o options) logOptions(cfg *config.Config) []log.Option {
	opts := []log.Option{log.WithLevel(cfg.LogLevel)}
	if o.jsonLog {
		opts = append(opts, log.WithJSON())
	}
	return opts
}

func (o options) traversal(pattern string, cfg *config.Config) search.TraversalConfig {
	return search.TraversalConfig{
		IncludeFiles:  o.files,
		IncludeDirs:   o.dirs,
		RecurseAll:    o.all,
		CaseSensitive: o.caseSensitive,
		Pattern:       pattern,
		Exclude:       cfg.Exclude,
	}
}

type app struct {
	stdout io.Writer
	stderr io.Writer

	isTerminal func() bool
	runProgram func(*tui.Model) (*tui.Model, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		runProgram: runProgram,
	}
}

// Execute runs the command line and returns the process exit status.
func (a *app) Execute(args []string) int {
	cmd := a.newRootCmd()
	cmd.SetArgs(normalizeArgs(args))

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	red := color.New(color.FgRed, color.Bold)
	if errors.IsUsageError(err) {
		red.Fprintf(a.stderr, "error: %v\n\n", err)
		fmt.Fprint(a.stderr, usage(cmd))
		return exitUsage
	}
	red.Fprintf(a.stderr, "error: %v\n", err)
	return exitError
}

func (a *app) newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "look [flags] <substring>",
		Short: "Find files and directories by name and act on them",
		Long: `look searches a directory tree for entries whose names contain a substring
and opens an interactive list of the matches.

In the list, press ":" to type a command:
  quit   leave
  code   open the selected entry in the editor
  cd     print the selected entry's directory and leave`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return errors.ErrMissingPattern
			case len(args) > 1:
				return errors.NewUsageError(fmt.Sprintf("expected one substring, got %d arguments", len(args)), nil)
			case args[0] == "":
				return errors.ErrMissingPattern
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, args[0])
		},
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.NewUsageError(err.Error(), err)
	})

	flags := cmd.Flags()
	flags.BoolVarP(&opts.all, "all", "a", false, "recurse into subdirectories")
	flags.BoolVarP(&opts.caseSensitive, "case", "c", false, "match case exactly")
	flags.BoolVarP(&opts.dirs, "dir", "d", false, "match directories only")
	flags.BoolVarP(&opts.files, "file", "f", false, "match files only")
	flags.StringVarP(&opts.root, "path", "p", ".", "directory to search")
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/look/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.jsonLog, "json-log", false, "write log lines as JSON")

	return cmd
}

func (a *app) run(opts options, pattern string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	log.Configure(append(opts.logOptions(cfg), log.WithOutput(a.stderr))...)
	if opts.debug {
		log.SetDebug(true)
	}
	log.LogWithFields(log.F("pattern", pattern), log.F("root", opts.root)).Debug("searching")

	records, err := search.Walk(opts.root, opts.traversal(pattern, cfg), search.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.stdout, noResults)
		return nil
	}

	if !a.isTerminal() {
		return errors.New("standard output is not a terminal")
	}

	logger := a.sessionLogger(cfg, opts)
	defer logger.Close()

	dispatcher := command.New(append(command.FromConfig(cfg), command.WithLogger(logger))...)
	model := tui.New(records,
		tui.WithDispatcher(dispatcher),
		tui.WithTheme(cfg.Theme),
		tui.WithLogger(logger),
	)

	final, err := a.runProgram(model)
	if err != nil {
		err = errors.Wrap(err, "terminal error")
		log.LogError(err, "navigator failed")
		return err
	}
	if out, ok := final.LastOutput(); ok && out != "" {
		fmt.Fprintln(a.stdout, out)
	}
	return nil
}

// sessionLogger replaces the package logger for as long as the navigator owns
// the screen: lines go to the configured log file, or nowhere.
func (a *app) sessionLogger(cfg *config.Config, opts options) *log.Logger {
	debug := log.IsDebug()

	logOpts := append(opts.logOptions(cfg), log.WithOutput(io.Discard))
	if cfg.LogFile != "" {
		logOpts = append(logOpts, log.WithFile(cfg.LogFile))
	}
	log.Configure(logOpts...)
	if debug && !log.IsDebug() {
		log.SetDebug(true)
	}
	return log.Default()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	return config.LoadConfig()
}

func runProgram(m *tui.Model) (*tui.Model, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	return final.(*tui.Model), nil
}

// normalizeArgs rewrites single-dash long flags such as -all to --all.
// Everything after a bare "--" is left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name, value, hasValue := strings.Cut(arg[1:], "=")
			if singleDashFlags[name] {
				arg = "--" + name
				if hasValue {
					arg += "=" + value
				}
			}
		}
		out = append(out, arg)
	}
	return out
}

func usage(cmd *cobra.Command) string {
	bold := color.New(color.Bold)
	return bold.Sprint("Usage:") + "\n  " + cmd.UseLine() + "\n\n" +
		bold.Sprint("Flags:") + "\n" + cmd.LocalFlags().FlagUsages()
}
