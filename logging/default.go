package logging

import (
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
)

// DefaultLogger writes leveled lines through the standard log package.
// Debug and Info go to the info writer, Warn and Error to the error writer.
type DefaultLogger struct {
	out    *log.Logger
	errOut *log.Logger
	mu     *sync.RWMutex
	level  *Level
	fields Fields
}

// NewDefaultLogger returns a logger writing to stdout and stderr at InfoLevel.
func NewDefaultLogger() *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, log.LstdFlags)
}

// NewWriterLogger returns a logger writing to the given writers with the
// given standard log flags. Passing the same writer twice is fine.
func NewWriterLogger(info, errs io.Writer, flags int) *DefaultLogger {
	level := InfoLevel
	return &DefaultLogger{
		out:    log.New(info, "", flags),
		errOut: log.New(errs, "", flags),
		mu:     &sync.RWMutex{},
		level:  &level,
		fields: Fields{},
	}
}

func (d *DefaultLogger) format(level Level, err error, msg string, fields ...Fields) string {
	all := make(Fields, len(d.fields))
	maps.Copy(all, d.fields)
	for _, f := range fields {
		maps.Copy(all, f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}

	// Sorted keys keep the output stable.
	for _, k := range slices.Sorted(maps.Keys(all)) {
		fmt.Fprintf(&b, " %s=%v", k, all[k])
	}

	return b.String()
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	d.mu.RLock()
	minLevel := *d.level
	d.mu.RUnlock()
	if level < minLevel {
		return
	}

	line := d.format(level, err, msg, fields...)
	if level >= WarnLevel {
		d.errOut.Println(line)
		return
	}
	d.out.Println(line)
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

// WithFields returns a child logger that shares writers and level with d.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(d.fields)+len(fields))
	maps.Copy(merged, d.fields)
	maps.Copy(merged, fields)

	return &DefaultLogger{
		out:    d.out,
		errOut: d.errOut,
		mu:     d.mu,
		level:  d.level,
		fields: merged,
	}
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.mu.Lock()
	*d.level = level
	d.mu.Unlock()
}
