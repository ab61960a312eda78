package match

// eventLog keeps the last size combat-log lines, oldest first.
type eventLog struct {
	lines []string
	size  int
}

func newEventLog(size int) *eventLog {
	if size <= 0 {
		size = DefaultLogSize
	}
	return &eventLog{lines: make([]string, 0, size), size: size}
}

func (l *eventLog) add(line string) {
	if len(l.lines) == l.size {
		copy(l.lines, l.lines[1:])
		l.lines = l.lines[:len(l.lines)-1]
	}
	l.lines = append(l.lines, line)
}

func (l *eventLog) snapshot() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
