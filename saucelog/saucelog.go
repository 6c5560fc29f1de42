package saucelog

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// capacity bounds the number of retained log lines.
const capacity = 200

// SauceLog is a logrus hook that retains the most recent log lines so they
// can be inspected through the api.
type SauceLog struct {
	mtx     sync.Mutex
	entries []string
}

// Compile time check for protocol compatibility
var _ logrus.Hook = (*SauceLog)(nil)

func New() *SauceLog {
	return &SauceLog{}
}

func (l *SauceLog) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (l *SauceLog) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.entries = append(l.entries, line)
	if len(l.entries) > capacity {
		l.entries = l.entries[len(l.entries)-capacity:]
	}

	return nil
}

// Get returns the retained log lines, oldest first.
func (l *SauceLog) Get() []string {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	entries := make([]string, len(l.entries))
	copy(entries, l.entries)

	return entries
}
