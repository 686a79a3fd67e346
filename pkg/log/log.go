package log

import (
	"fmt"
	"os"

	"github.com/v2rayA/beego/v2/logs"
)

var Log *logs.BeeLogger

func init() {
	Log = logs.NewLogger(200)
	Log.EnableFuncCallDepth(true)
	Log.SetLogFuncCallDepth(Log.GetLogFuncCallDepth() + 1)
}

func InitLog(logWay string, logFile string, logLevel string, maxDays int64, disableLogColor bool, disableLogTimestamp bool) {
	SetLogFile(logWay, logFile, maxDays, disableLogColor, disableLogTimestamp)
	SetLogLevel(logLevel)
}

func SetLogFile(logWay string, logFile string, maxDays int64, disableLogColor bool, disableLogTimestamp bool) {
	if logWay == "console" {
		params := fmt.Sprintf(`{"color": %v}`, !disableLogColor)
		_ = Log.SetLogger("console", params)
	} else {
		params := fmt.Sprintf(`{"filename": "%s", "maxdays": %d}`, logFile, maxDays)
		_ = Log.SetLogger("file", params)
	}
	// the console and file adapters stamp unconditionally; the flag is
	// accepted for CLI stability only
	_ = disableLogTimestamp
}

func SetLogLevel(logLevel string) {
	level := 4 // warn
	switch logLevel {
	case "error":
		level = 3
	case "warn":
		level = 4
	case "info":
		level = 6
	case "debug":
		level = 7
	case "trace":
		level = 8
	}
	Log.SetLevel(level)
}

func Trace(format string, v ...interface{}) {
	Log.Trace(format, v...)
}

func Debug(format string, v ...interface{}) {
	Log.Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	Log.Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	Log.Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	Log.Error(format, v...)
}

func Fatal(format string, v ...interface{}) {
	Log.Critical(format, v...)
	Log.Flush()
	os.Exit(1)
}
