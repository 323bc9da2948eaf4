package eod

import (
	"time"

	"fill-ledger-bot/internal/interfaces"
)

const defaultCutoffHour = 23

var defaultSummarizer interfaces.EodSummarizer = &eodSummarizer{cutoffHour: defaultCutoffHour}

func SetDefaultSummarizer(summarizer interfaces.EodSummarizer) {
	defaultSummarizer = summarizer
}

// NewSummarizer builds a summarizer that becomes eligible to run after the
// given hour of the day, KST.
func NewSummarizer(cutoffHour int) interfaces.EodSummarizer {
	if cutoffHour < 0 || cutoffHour > 23 {
		cutoffHour = defaultCutoffHour
	}
	return &eodSummarizer{cutoffHour: cutoffHour}
}

func SummarizeDay(t time.Time) (string, error) {
	return defaultSummarizer.SummarizeDay(t)
}

func SummarizeToday() (string, error) {
	return defaultSummarizer.SummarizeToday()
}

func ShouldRunNow() (bool, string) {
	return defaultSummarizer.ShouldRunNow()
}
