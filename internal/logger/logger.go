package logger

import (
	"io"
	"log"
	"os"
)

type Logger struct {
	info *log.Logger
	warn *log.Logger
	err  *log.Logger
}

func New() *Logger {
	return &Logger{
		info: log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime),
		warn: log.New(os.Stderr, "WARN: ", log.Ldate|log.Ltime),
		err:  log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime),
	}
}

// NewWithWriter routes all levels to a single writer, used by tests.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		info: log.New(w, "INFO: ", log.Ldate|log.Ltime),
		warn: log.New(w, "WARN: ", log.Ldate|log.Ltime),
		err:  log.New(w, "ERROR: ", log.Ldate|log.Ltime),
	}
}

func (l *Logger) Info(v ...interface{}) {
	l.info.Println(v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.warn.Println(v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.err.Println(v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.err.Printf(format, v...)
}
