// Package txlog is a small leveled logger in the shape of the geth/gochain
// log package: package-level Info/Warn/Error/Crit/Debug calls against a
// mutable root Logger, context passed as alternating key/value pairs.
package txlog

import (
	"fmt"
	"os"
	"time"

	"github.com/go-stack/stack"
)

// Lvl is a log level, ordered from most to least severe.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "crit"
	case LvlError:
		return "eror"
	case LvlWarn:
		return "warn"
	case LvlInfo:
		return "info"
	case LvlDebug:
		return "dbug"
	case LvlTrace:
		return "trce"
	default:
		return "unkn"
	}
}

const errorKey = "LOG15_ERROR"

// Lazy allows a context value to be evaluated only at the moment a record
// is actually written, rather than at the call site.
type Lazy struct {
	Fn interface{}
}

// Record is a single log event.
type Record struct {
	Time time.Time
	Lvl  Lvl
	Msg  string
	Ctx  []interface{}
	Call stack.Call
}

// Logger writes structured, leveled log records.
type Logger interface {
	New(ctx ...interface{}) Logger
	SetHandler(h Handler)

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	ctx []interface{}
	h   *swapHandler
}

// swapHandler holds a logger's active handler so SetHandler can replace it;
// it is itself a Handler. The replacement is a plain assignment and is not
// synchronized with concurrent Log calls.
type swapHandler struct {
	cur Handler
}

func (s *swapHandler) Log(r *Record) error  { return s.cur.Log(r) }
func (s *swapHandler) IsLogging(l Lvl) bool { return s.cur.IsLogging(l) }

// New creates a new Logger whose context is the root's context extended
// with ctx.
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{ctx: newContext(l.ctx, ctx), h: new(swapHandler)}
	child.SetHandler(l.h.cur)
	return child
}

func newContext(prefix []interface{}, suffix []interface{}) []interface{} {
	normalizedSuffix := normalize(suffix)
	newCtx := make([]interface{}, len(prefix)+len(normalizedSuffix))
	n := copy(newCtx, prefix)
	copy(newCtx[n:], normalizedSuffix)
	return newCtx
}

func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	return ctx
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}) {
	l.h.Log(&Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  newContext(l.ctx, ctx),
		Call: stack.Caller(2),
	})
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx) }

// Crit logs at the critical level and then terminates the process. The
// queue calls this only for invariant violations (see §7 of the design:
// fatal precondition violations halt the process rather than being
// recovered).
func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(msg, LvlCrit, ctx)
	os.Exit(1)
}

func (l *logger) SetHandler(h Handler) {
	l.h.cur = h
}

var root = &logger{h: new(swapHandler)}

func init() {
	root.SetHandler(LvlFilterHandler(LvlInfo, StreamHandler(stderrWriter{}, TerminalFormat())))
}

type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return fmt.Fprint(os.Stderr, string(p)) }

// Root returns the root logger.
func Root() Logger { return root }

// SetHandler replaces the root logger's handler, e.g. DiscardHandler() in
// tests or LvlFilterHandler(LvlDebug, ...) for verbose diagnostics.
func SetHandler(h Handler) { root.SetHandler(h) }

func Trace(msg string, ctx ...interface{}) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { root.Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { root.Crit(msg, ctx...) }
