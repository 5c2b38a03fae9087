package game

import "fmt"

// ContextLog is the running narration of a round, shown to every provider
// with each decision request.
type ContextLog struct {
	lines []string
}

func (l *ContextLog) Addf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *ContextLog) Lines() []string {
	return append([]string(nil), l.lines...)
}
