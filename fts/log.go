package fts

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// sessionLog is the append-only diagnostic log carried by every decode
// session. Each line is retained in order; nothing decoded or skipped goes
// unrecorded. When a structured logger is attached, lines are mirrored to it
// tagged with the session id.
type sessionLog struct {
	id     uuid.UUID
	lines  []string
	logger *slog.Logger
}

func newSessionLog(logger *slog.Logger) *sessionLog {
	return &sessionLog{id: uuid.New(), logger: logger}
}

func (l *sessionLog) appendf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)
	if l.logger != nil {
		l.logger.Debug(line, slog.String("session", l.id.String()))
	}
}

func (l *sessionLog) warnf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)
	if l.logger != nil {
		l.logger.Warn(line, slog.String("session", l.id.String()))
	}
}

// Lines returns a copy of the log in append order.
func (l *sessionLog) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
