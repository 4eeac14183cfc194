// Package search finds directory entries whose names contain a substring.
//
// Walk runs to completion before anything is displayed; the records it
// returns are never modified afterwards.
package search

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"look/internal/errors"
	"look/internal/log"

	"github.com/gobwas/glob"
	"golang.org/x/text/unicode/norm"
)

// TraversalConfig is the filter set for one walk.
type TraversalConfig struct {
	IncludeFiles  bool
	IncludeDirs   bool
	RecurseAll    bool
	CaseSensitive bool
	Pattern       string
	// Exclude lists glob patterns matched against entry names. Excluded
	// entries are neither reported nor descended into.
	Exclude []string
}

// matchAll is the default when neither kind filter was requested.
func (c TraversalConfig) matchAll() bool {
	return !c.IncludeFiles && !c.IncludeDirs
}

// MatchRecord is one located entry.
type MatchRecord struct {
	// Path is the filesystem path, suitable for opening.
	Path string
	// Text is Path as displayable UTF-8 (NFC, invalid bytes replaced).
	Text string
	// Start and End delimit the matched substring inside Text.
	Start int
	End   int
	IsDir bool
	Size  int64
}

// Name returns the final element of the record's display text.
func (r MatchRecord) Name() string {
	return r.Text[nameOffset(r.Text):]
}

// Segments splits Text around the highlighted span.
func (r MatchRecord) Segments() (before, match, after string) {
	return r.Text[:r.Start], r.Text[r.Start:r.End], r.Text[r.End:]
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger directs walk diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(w *Walker) {
		w.logger = l
	}
}

// Walker performs a single recursive search.
type Walker struct {
	cfg     TraversalConfig
	pattern string
	exclude []glob.Glob
	logger  *log.Logger
	records []MatchRecord
}

// NewWalker validates cfg and compiles its exclude patterns.
func NewWalker(cfg TraversalConfig, opts ...Option) (*Walker, error) {
	if cfg.Pattern == "" {
		return nil, errors.ErrMissingPattern
	}

	w := &Walker{
		cfg:     cfg,
		pattern: norm.NFC.String(cfg.Pattern),
		logger:  log.Default(),
	}
	for _, pattern := range cfg.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError("invalid exclude pattern", pattern, errors.InvalidConfig, err)
		}
		w.exclude = append(w.exclude, g)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Walk searches root according to cfg and returns the matches in traversal
// order.
func Walk(root string, cfg TraversalConfig, opts ...Option) ([]MatchRecord, error) {
	w, err := NewWalker(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return w.Walk(root)
}

// Walk searches root. Only a failure to read root itself is returned;
// unreadable subdirectories are logged and skipped.
func (w *Walker) Walk(root string) ([]MatchRecord, error) {
	w.records = nil

	entries, err := readDir(root)
	if err != nil {
		return nil, rootError(root, err)
	}
	w.visit(root, entries)

	w.logger.With(log.F("root", root), log.F("matches", len(w.records))).Debug("walk complete")
	return w.records, nil
}

func (w *Walker) walkDir(dir string) {
	entries, err := readDir(dir)
	if err != nil {
		w.logger.WithError(errors.NewFileError("cannot read directory", dir, errors.FileAccessDenied, err)).
			Warn("skipping directory")
	}
	// A failed read can still return the entries listed before the error.
	w.visit(dir, entries)
}

func (w *Walker) visit(dir string, entries []fs.DirEntry) {
	for _, entry := range entries {
		name := entry.Name()
		if w.excluded(name) {
			continue
		}

		path := filepath.Join(dir, name)
		isDir := entry.IsDir()

		if w.wants(isDir) {
			if record, ok := w.match(path, entry); ok {
				w.records = append(w.records, record)
			}
		}

		if isDir && w.cfg.RecurseAll {
			w.walkDir(path)
		}
	}
}

func (w *Walker) wants(isDir bool) bool {
	if w.cfg.matchAll() {
		return true
	}
	if isDir {
		return w.cfg.IncludeDirs
	}
	return w.cfg.IncludeFiles
}

func (w *Walker) excluded(name string) bool {
	for _, g := range w.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func (w *Walker) match(path string, entry fs.DirEntry) (MatchRecord, bool) {
	text := displayText(path)
	offset := nameOffset(text)

	span, ok := Find(text[offset:], w.pattern, w.cfg.CaseSensitive)
	if !ok {
		return MatchRecord{}, false
	}

	// An entry that vanished or cannot be stat'ed counts as no match.
	info, err := entry.Info()
	if err != nil {
		w.logger.With(log.F("path", path)).Debugf("stat failed: %v", err)
		return MatchRecord{}, false
	}

	return MatchRecord{
		Path:  path,
		Text:  text,
		Start: offset + span.Start,
		End:   offset + span.End,
		IsDir: entry.IsDir(),
		Size:  info.Size(),
	}, true
}

// readDir lists dir in the order the filesystem returns entries.
func readDir(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

func rootError(root string, err error) error {
	switch {
	case os.IsNotExist(err):
		return errors.NewFileError("search root not found", root, errors.FileNotFound, err)
	case os.IsPermission(err):
		return errors.NewFileError("cannot read search root", root, errors.FileAccessDenied, err)
	default:
		return errors.NewFileError("invalid search root", root, errors.InvalidPath, err)
	}
}

func displayText(path string) string {
	return norm.NFC.String(strings.ToValidUTF8(path, "\uFFFD"))
}

// nameOffset returns the byte index where the final path element of text
// begins.
func nameOffset(text string) int {
	return strings.LastIndexByte(text, filepath.Separator) + 1
}
