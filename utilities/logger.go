package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	debugLog *log.Logger
	logMutex sync.Mutex
)

// InitLogging wires the leveled loggers to stdout/stderr plus rotated files
// under logDir. Safe to call once at startup; before that the package-level
// helpers fall back to the standard logger.
func InitLogging(logDir string, maxSizeMB, maxBackups int) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	infoFile := rotatedLogFile(filepath.Join(logDir, "info.log"), maxSizeMB, maxBackups)
	warnFile := rotatedLogFile(filepath.Join(logDir, "warn.log"), maxSizeMB, maxBackups)
	errorFile := rotatedLogFile(filepath.Join(logDir, "error.log"), maxSizeMB, maxBackups)

	infoWriter := io.MultiWriter(os.Stdout, infoFile)
	warnWriter := io.MultiWriter(os.Stdout, warnFile)
	errorWriter := io.MultiWriter(os.Stderr, errorFile)

	infoLog = log.New(infoWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(warnWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime)
	debugLog = log.New(infoWriter, "DEBUG: ", log.Ldate|log.Ltime)

	// Override Go's default log output as well.
	log.SetOutput(infoWriter)
}

func rotatedLogFile(path string, maxSizeMB, maxBackups int) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

// Log writes a formatted entry at the given level, tagged with the caller.
func Log(level string, format string, v ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()

	message := fmt.Sprintf(format, v...)
	logEntry := fmt.Sprintf("[%s] %s", getCallerInfo(), message)

	target := infoLog
	switch level {
	case "WARNING":
		target = warnLog
	case "ERROR":
		target = errorLog
	case "DEBUG":
		target = debugLog
	}
	if target == nil {
		log.Printf("%s: %s", level, logEntry)
		return
	}
	target.Println(logEntry)
}

func Info(format string, v ...interface{})  { Log("INFO", format, v...) }
func Warn(format string, v ...interface{})  { Log("WARNING", format, v...) }
func Error(format string, v ...interface{}) { Log("ERROR", format, v...) }
func Debug(format string, v ...interface{}) { Log("DEBUG", format, v...) }
