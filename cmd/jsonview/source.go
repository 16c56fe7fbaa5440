package main

import (
	"io"
	"os"

	"jsonview/internal/jsonvalue"
	"jsonview/internal/logging"
	"jsonview/internal/viewer"
)

// stdin is swapped out in tests.
var stdin io.Reader = os.Stdin

// source names the document being viewed. An empty path means standard input.
type source struct {
	path   string
	format jsonvalue.Format
}

func newSource(args []string, f jsonvalue.Format) source {
	s := source{format: f}
	if len(args) == 1 && args[0] != "-" {
		s.path = args[0]
	}
	s.format = f.Resolve(s.path)
	return s
}

func (s source) isFile() bool { return s.path != "" }

func (s source) name() string {
	if s.path == "" {
		return "<stdin>"
	}
	return s.path
}

func (s source) load() (viewer.Value, error) {
	t := logging.StartTimer(logging.CategoryViewer, "load "+s.name())
	defer t.Stop()

	if s.isFile() {
		return jsonvalue.Load(s.path, s.format)
	}
	return jsonvalue.Read(stdin, s.format)
}

func (s source) decode(data []byte) (viewer.Value, error) {
	return jsonvalue.Decode(data, s.format)
}
