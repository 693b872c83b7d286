package darwin

import (
	"context"
	"strings"
	"sync"
)

// scriptedRunner returns canned output and records every invocation.
type scriptedRunner struct {
	mu    sync.Mutex
	out   []byte
	err   error
	calls [][]string
}

func (s *scriptedRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func (s *scriptedRunner) invocations() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.calls...)
}

func (s *scriptedRunner) lastCommand() string {
	calls := s.invocations()
	if len(calls) == 0 {
		return ""
	}
	return strings.Join(calls[len(calls)-1], " ")
}
