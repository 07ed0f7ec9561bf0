package game

import "fmt"

const eventLogCap = 100

// EventLog is a world resource holding the most recent combat and turn
// messages, oldest first.
type EventLog struct {
	lines []string
}

// Push appends a formatted message, evicting the oldest line past capacity.
func (l *EventLog) Push(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	if len(l.lines) > eventLogCap {
		l.lines = l.lines[len(l.lines)-eventLogCap:]
	}
}

// Recent returns the last n messages, oldest first.
func (l *EventLog) Recent(n int) []string {
	if n > len(l.lines) {
		n = len(l.lines)
	}
	return l.lines[len(l.lines)-n:]
}

// Len returns the number of retained messages.
func (l *EventLog) Len() int {
	return len(l.lines)
}
