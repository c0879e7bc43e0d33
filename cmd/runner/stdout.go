package runner

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santiago-labs/apphost/lib/colors"
	"github.com/santiago-labs/apphost/resource"
)

func NewSTDOut() ConsoleUI {
	return NewWriter(os.Stdout)
}

// NewWriter returns a line based console writing to w.
func NewWriter(w io.Writer) ConsoleUI {
	return &stdOut{
		out:       w,
		coloredId: make(map[string]string),
	}
}

type stdOut struct {
	out       io.Writer
	coloredId map[string]string
	lock      sync.Mutex
}

func (s *stdOut) ColoredId(r resource.Resource) string {
	coloredId, ok := s.coloredId[r.ID()]
	if !ok {
		colorFunc := colors.DeterministicColorFunc(r.ID())
		coloredId = colorFunc(fmt.Sprintf("[%s: %s]", r.Type(), r.Name()))
		s.coloredId[r.ID()] = coloredId
	}
	return coloredId
}

func (s *stdOut) Print(msg string, r resource.Resource) {
	s.lock.Lock()
	defer s.lock.Unlock()
	fmt.Fprintf(s.out, "%s %v\n", s.ColoredId(r), msg)
}

func (s *stdOut) Start() {}

func (s *stdOut) Done() {}
