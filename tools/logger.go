package tools

import (
	"log"
	"time"
)

// Both default on; the convert command turns them off for -silent runs
// and when no -timestamp flag was given.
var isEnabled = true
var printTimestamp = true

func DisableLogger() {
	isEnabled = false
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// LogOutput prints the pipeline progress messages, with a timestamp line
// when timestamps are on. Suppressed entirely after DisableLogger.
func LogOutput(val ...interface{}) {
	if isEnabled {
		if printTimestamp {
			log.Println("[" + time.Now().Format("2006-01-02 15.04:05.000") + "] ")
		}
		log.Println(val...)
	}
}
