package tui

import (
	"fmt"
	"strings"
	"testing"

	"look/internal/command"
	"look/internal/search"
	"look/pkg/testutils"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainView(m *Model) string {
	return testutils.StripANSI(m.View())
}

func TestViewLayout(t *testing.T) {
	m := newModel(sampleRecords(), &fakeDispatcher{})
	m.SetSize(60, 20)

	view := plainView(m)
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 20)
	assert.Contains(t, lines[0], "Result")
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 60, "line too wide: %q", line)
	}

	assert.Contains(t, view, " > a.txt")
	assert.Contains(t, view, "   sub/ab.txt")
	assert.Contains(t, view, "[SELECT] 1/3")
	assert.Contains(t, view, "up")
}

func TestViewFollowsSelection(t *testing.T) {
	m := newModel(sampleRecords(), &fakeDispatcher{})
	m.HandleKey(Key{Type: KeyDown})

	view := plainView(m)
	assert.Contains(t, view, "   a.txt")
	assert.Contains(t, view, " > sub/ab.txt")
	assert.Contains(t, view, "2/3")
}

func TestViewHighlightsMatch(t *testing.T) {
	m := newModel([]search.MatchRecord{record("src/needle.go", 4, 10)}, &fakeDispatcher{})

	got := m.renderRecord(m.records[0], true)
	want := m.styles.Selected.Render(selectedMarker+"src/") +
		m.styles.SelectedMatch.Render("needle") +
		m.styles.Selected.Render(".go")
	assert.Equal(t, want, got)

	got = m.renderRecord(m.records[0], false)
	want = m.styles.Row.Render(rowIndent+"src/") +
		m.styles.Match.Render("needle") +
		m.styles.Row.Render(".go")
	assert.Equal(t, want, got)
}

func TestViewStatusLine(t *testing.T) {
	records := []search.MatchRecord{
		{Path: "notes.txt", Text: "notes.txt", End: 5, Size: 2048},
		{Path: "docs", Text: "docs", End: 2, IsDir: true},
	}
	m := newModel(records, &fakeDispatcher{})
	assert.Contains(t, plainView(m), "file  2.0 kB  notes.txt")

	m.HandleKey(Key{Type: KeyDown})
	assert.Contains(t, plainView(m), "2/2  dir  docs")

	empty := newModel(nil, &fakeDispatcher{})
	assert.Contains(t, plainView(empty), "0/0")
}

func TestViewScrollsLongLists(t *testing.T) {
	var records []search.MatchRecord
	for i := 0; i < 50; i++ {
		records = append(records, record(fmt.Sprintf("file-%02d.txt", i), 0, 4))
	}
	m := newModel(records, &fakeDispatcher{})
	m.SetSize(40, 12)

	for i := 0; i < 30; i++ {
		m.HandleKey(Key{Type: KeyDown})
	}
	view := plainView(m)
	assert.Contains(t, view, " > file-30.txt")
	assert.NotContains(t, view, "file-00.txt")

	for i := 0; i < 30; i++ {
		m.HandleKey(Key{Type: KeyUp})
	}
	view = plainView(m)
	assert.Contains(t, view, " > file-00.txt")
	assert.NotContains(t, view, "file-30.txt")
}

func TestViewTruncatesLongPaths(t *testing.T) {
	long := strings.Repeat("d/", 60) + "target"
	m := newModel([]search.MatchRecord{record(long, len(long)-6, len(long))}, &fakeDispatcher{})
	m.SetSize(40, 10)

	for _, line := range strings.Split(plainView(m), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
	assert.Contains(t, plainView(m), "…")
}

func TestViewInputPane(t *testing.T) {
	d := &fakeDispatcher{outcome: command.Outcome{Kind: command.OpenEditor, Output: "line one\nline two", HasOutput: true}}
	m := newModel(sampleRecords(), d)

	assert.NotContains(t, plainView(m), ":code")

	m.HandleKey(RuneKey(':'))
	typeText(m, "code")
	view := plainView(m)
	assert.Contains(t, view, ":code")
	assert.Contains(t, view, "[COMMAND]")
	assert.Contains(t, view, "enter")

	m.HandleKey(Key{Type: KeyEnter})
	view = plainView(m)
	assert.Contains(t, view, "line one line two")
	assert.NotContains(t, view, ":code")

	m.HandleKey(RuneKey('c'))
	view = plainView(m)
	assert.NotContains(t, view, "line one")
	assert.Contains(t, view, ":c")
}

func TestRenderInputCursor(t *testing.T) {
	m := newModel(nil, &fakeDispatcher{})
	m.HandleKey(RuneKey(':'))
	typeText(m, "cd")
	m.HandleKey(Key{Type: KeyLeft})

	got := m.renderInput()
	require.Equal(t, "c"+m.styles.Cursor.Render("d"), got)

	m.HandleKey(Key{Type: KeyRight})
	assert.Equal(t, "cd"+m.styles.Cursor.Render(" "), m.renderInput())
}
