package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// commandPattern matches the sync command on its own in a message, with an
// optional ":YYYY-MM-DD" date suffix. Two-digit years are accepted and read
// as 20xx.
func commandPattern(commandText string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(commandText) + `(?:\s*:\s*(\d{2,4}-\d{2}-\d{2}))?\s*$`)
}

// parseCommand reports whether text is the sync command. Without a date
// suffix the target is today in the ledger timezone and explicit is false.
func (e *Engine) parseCommand(text string) (target time.Time, explicit bool, isCommand bool, err error) {
	m := e.cmd.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return time.Time{}, false, false, nil
	}
	if m[1] == "" {
		now := time.Now().In(e.loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.loc)
		return today, false, true, nil
	}

	raw := m[1]
	if strings.Index(raw, "-") == 2 {
		raw = "20" + raw
	}
	t, err := time.ParseInLocation("2006-01-02", raw, e.loc)
	if err != nil {
		return time.Time{}, false, true, fmt.Errorf("command date %q: %w", m[1], err)
	}
	return t, true, true, nil
}
