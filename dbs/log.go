package dbs

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/surrealdb/surrealdb/log"
)

// logger is this package's entry, using teacher's own log.WithPrefix
// facade (log/log.go) rather than talking to logrus directly.
var logger = log.WithPrefix("dbs")

// logSlow warns when a statement's execution time exceeded the
// configured threshold, naming the statement text and elapsed time
// (spec.md §5 "Slow-log", SPEC_FULL.md's ambient-stack supplement).
func logSlow(threshold time.Duration, text string, elapsed time.Duration) {
	if threshold <= 0 || elapsed < threshold {
		return
	}
	logger.WithFields(logrus.Fields{
		"elapsed":   elapsed,
		"threshold": threshold,
	}).Warnf("slow statement: %s", text)
}
