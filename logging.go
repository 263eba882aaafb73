package cadmtl

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// DefaultLogPrefix 库和命令行共用的日志前缀
const DefaultLogPrefix = "cadmtl"

// Logger 转换过程中的降级和诊断输出
type Logger interface {
	DebugEnabled() bool
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// LogLevel 日志级别，低于当前级别的记录被丢弃
type LogLevel int32

const (
	LOG_DEBUG LogLevel = iota
	LOG_INFO
	LOG_WARN
	LOG_ERROR
)

var logLevelTags = [...]string{"D", "I", "W", "E"}

func (lv LogLevel) tag() string {
	if lv < LOG_DEBUG || lv > LOG_ERROR {
		return "?"
	}
	return logLevelTags[lv]
}

// StdLogger 基于标准库log的分级日志，所有级别写同一个io.Writer
type StdLogger struct {
	level atomic.Int32
	std   *log.Logger
}

// NewLogger prefix为空时使用DefaultLogPrefix
func NewLogger(w io.Writer, prefix string, level LogLevel) *StdLogger {
	if prefix == "" {
		prefix = DefaultLogPrefix
	}
	l := &StdLogger{
		std: log.New(w, prefix+" ", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix),
	}
	l.level.Store(int32(level))
	return l
}

// NewDefaultLogger 写stderr，debug为真时输出调试信息
func NewDefaultLogger(debug bool) *StdLogger {
	level := LOG_INFO
	if debug {
		level = LOG_DEBUG
	}
	return NewLogger(os.Stderr, DefaultLogPrefix, level)
}

func (l *StdLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

func (l *StdLogger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

func (l *StdLogger) DebugEnabled() bool {
	return l.Level() <= LOG_DEBUG
}

func (l *StdLogger) logf(level LogLevel, format string, args ...any) {
	if level < l.Level() {
		return
	}
	l.std.Output(3, level.tag()+" "+fmt.Sprintf(format, args...))
}

func (l *StdLogger) Debugf(format string, args ...any) { l.logf(LOG_DEBUG, format, args...) }
func (l *StdLogger) Infof(format string, args ...any)  { l.logf(LOG_INFO, format, args...) }
func (l *StdLogger) Warnf(format string, args ...any)  { l.logf(LOG_WARN, format, args...) }
func (l *StdLogger) Errorf(format string, args ...any) { l.logf(LOG_ERROR, format, args...) }

type nopLogger struct{}

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// NopLogger 丢弃所有输出
func NopLogger() Logger { return nopLogger{} }
