package eod

import (
	"os"
	"path/filepath"
	"time"
)

func logDir() string {
	if v := os.Getenv("LEDGER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func kstNow() time.Time {
	return time.Now().In(time.FixedZone("KST", 32400))
}

func dayJournalFile(t time.Time) string {
	dateStr := t.Format("2006-01-02")
	return filepath.Join(logDir(), dateStr+".txt")
}

func eodCSVPath(t time.Time) string {
	dateStr := t.Format("2006-01-02")
	return filepath.Join(logDir(), "eod", dateStr+".csv")
}
