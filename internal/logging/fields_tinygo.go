//go:build tinygo || baremetal

package logging

import "time"

// On the microcontroller structured fields are dropped; warnings still reach
// the serial console.

type Field struct{}

type Logger struct {
	name string
}

func Nop() *Logger { return &Logger{} }

func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &Logger{name: name}
}

func (l *Logger) With(...Field) *Logger { return l }

func (l *Logger) Debug(string, ...Field) {}

func (l *Logger) Info(string, ...Field) {}

func (l *Logger) Warn(msg string, _ ...Field) { println("WARN", l.name, msg) }

func (l *Logger) Sync() error { return nil }

type stringer interface{ String() string }

func String(string, string) Field { return Field{} }
func Stringer(string, stringer) Field { return Field{} }
func ByteString(string, []byte) Field { return Field{} }
func Error(error) Field { return Field{} }
func Int(string, int) Field { return Field{} }
func Int64(string, int64) Field { return Field{} }
func Uint32(string, uint32) Field { return Field{} }
func Uint64(string, uint64) Field { return Field{} }
func Duration(string, time.Duration) Field { return Field{} }
func Time(string, time.Time) Field { return Field{} }
