// Package treediff compares two rendered documents line by line using the
// sergi/go-diff line mode and groups the changes into unified-diff hunks.
package treediff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

// Prefix returns the unified-diff marker of the op.
func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	}
	return " "
}

// Line is one line of either document.
type Line struct {
	Op   Op
	Text string

	// lines of the old and new document consumed before this one
	oldAt int
	newAt int
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Engine computes line diffs.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch

	// Context is the number of unchanged lines kept around each change.
	Context int
}

// NewEngine creates an engine keeping context unchanged lines around changes.
func NewEngine(context int) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Engine{dmp: dmp, Context: max(context, 0)}
}

// Lines returns both documents merged into one sequence of equal, deleted
// and inserted lines.
func (e *Engine) Lines(oldText, newText string) []Line {
	a, b, lineArray := e.dmp.DiffLinesToChars(terminate(oldText), terminate(newText))
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCleanupSemantic(diffs)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	var out []Line
	oldAt, newAt := 0, 0
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, text := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			l := Line{Text: text, oldAt: oldAt, newAt: newAt}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				l.Op = Equal
				oldAt++
				newAt++
			case diffmatchpatch.DiffDelete:
				l.Op = Delete
				oldAt++
			case diffmatchpatch.DiffInsert:
				l.Op = Insert
				newAt++
			}
			out = append(out, l)
		}
	}
	return out
}

// Hunks groups the changes between the documents. Changes separated by at
// most twice the context share a hunk. Identical documents have no hunks.
func (e *Engine) Hunks(oldText, newText string) []Hunk {
	lines := e.Lines(oldText, newText)

	var hunks []Hunk
	for i := 0; i < len(lines); {
		for i < len(lines) && lines[i].Op == Equal {
			i++
		}
		if i == len(lines) {
			break
		}

		start := max(i-e.Context, 0)
		end := i
		for {
			for end < len(lines) && lines[end].Op != Equal {
				end++
			}
			next := end
			for next < len(lines) && lines[next].Op == Equal {
				next++
			}
			if next < len(lines) && next-end <= 2*e.Context {
				end = next
				continue
			}
			break
		}
		stop := min(end+e.Context, len(lines))
		hunks = append(hunks, newHunk(lines[start:stop]))
		i = stop
	}
	return hunks
}

func newHunk(lines []Line) Hunk {
	h := Hunk{Lines: lines}
	for _, l := range lines {
		if l.Op != Insert {
			h.OldCount++
		}
		if l.Op != Delete {
			h.NewCount++
		}
	}
	h.OldStart = lines[0].oldAt
	if h.OldCount > 0 {
		h.OldStart++
	}
	h.NewStart = lines[0].newAt
	if h.NewCount > 0 {
		h.NewStart++
	}
	return h
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
