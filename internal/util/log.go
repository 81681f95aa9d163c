package util

import (
	log "github.com/995933447/log-go"
	"github.com/995933447/log-go/impl/loggerwriter"
	"github.com/995933447/std-go/print"
)

// Logger is the package-wide sink for every internal package. Call sites
// always pass a context first so request/operation scoping can be added
// later without touching every call site.
var Logger *log.Logger

func init() {
	Logger = log.NewLogger(loggerwriter.NewStdoutLoggerWriter(print.ColorNil))
	Logger.SetLogLevel(log.LevelDebug)
}
