package txlog

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-stack/stack"
)

// Handler defines where and how log records are written.
// A Logger prints its log records by writing to a Handler.
// Handlers are composable, providing great flexibility in combining
// them to achieve the logging structure that suits the caller.
type Handler interface {
	Log(r *Record) error
	// IsLogging returns true if global logging for level is enabled.
	IsLogging(Lvl) bool
}

// FuncHandler returns a Handler that logs records with the given
// functions.
func FuncHandler(log func(r *Record) error, isLogging func(Lvl) bool) Handler {
	return &funcHandler{
		log:       log,
		isLogging: isLogging,
	}
}

type funcHandler struct {
	log       func(r *Record) error
	isLogging func(Lvl) bool
}

func (h funcHandler) Log(r *Record) error {
	return h.log(r)
}

func (h funcHandler) IsLogging(level Lvl) bool {
	return h.isLogging(level)
}

// Writer is the subset of io.Writer handlers need.
type Writer interface {
	Write(p []byte) (n int, err error)
}

// StreamHandler writes log records to a Writer with the given format.
// StreamHandler wraps itself with LazyHandler and SyncHandler to evaluate
// Lazy objects and perform safe concurrent writes.
func StreamHandler(wr Writer, fmtr Format) Handler {
	h := FuncHandler(func(r *Record) error {
		_, err := wr.Write(fmtr.Format(r))
		return err
	}, func(Lvl) bool { return true })
	return LazyHandler(SyncHandler(h))
}

// SyncHandler can be wrapped around a handler to guarantee that
// only a single Log operation can proceed at a time. It's necessary
// for thread-safe concurrent writes.
func SyncHandler(h Handler) Handler {
	var mu sync.Mutex
	return FuncHandler(func(r *Record) error {
		mu.Lock()
		err := h.Log(r)
		mu.Unlock()
		return err
	}, h.IsLogging)
}

// CallerFileHandler returns a Handler that adds the line number and file of
// the calling function to the context with key "caller".
func CallerFileHandler(h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		r.Ctx = append(r.Ctx, "caller", fmt.Sprint(r.Call))
		return h.Log(r)
	}, h.IsLogging)
}

// FilterHandler returns a Handler that only writes records to the
// wrapped Handler if the given function evaluates true.
func FilterHandler(fn func(r *Record) bool, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if fn(r) {
			return h.Log(r)
		}
		return nil
	}, h.IsLogging)
}

// LvlFilterHandler returns a Handler that only writes records whose level
// is at or below the given verbosity level to the wrapped Handler.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return FilterHandler(func(r *Record) (pass bool) {
		return r.Lvl <= maxLvl
	}, h)
}

// MultiHandler dispatches any write to each of its handlers.
func MultiHandler(hs ...Handler) Handler {
	return FuncHandler(func(r *Record) error {
		for _, h := range hs {
			h.Log(r)
		}
		return nil
	}, func(lvl Lvl) bool {
		for _, h := range hs {
			if h.IsLogging(lvl) {
				return true
			}
		}
		return false
	})
}

// LazyHandler writes all values to the wrapped handler after evaluating
// any lazy functions in the record's context.
func LazyHandler(h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		hadErr := false
		for i := 1; i < len(r.Ctx); i += 2 {
			lz, ok := r.Ctx[i].(Lazy)
			if ok {
				v, err := evaluateLazy(lz)
				if err != nil {
					hadErr = true
					r.Ctx[i] = err
				} else {
					if cs, ok := v.(stack.CallStack); ok {
						v = cs.TrimBelow(r.Call).TrimRuntime()
					}
					r.Ctx[i] = v
				}
			}
		}
		if hadErr {
			r.Ctx = append(r.Ctx, errorKey, "bad lazy")
		}
		return h.Log(r)
	}, h.IsLogging)
}

func evaluateLazy(lz Lazy) (interface{}, error) {
	t := reflect.TypeOf(lz.Fn)
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("INVALID_LAZY, not func: %+v", lz.Fn)
	}
	if t.NumIn() > 0 {
		return nil, fmt.Errorf("INVALID_LAZY, func takes args: %+v", lz.Fn)
	}
	if t.NumOut() == 0 {
		return nil, fmt.Errorf("INVALID_LAZY, no func return val: %+v", lz.Fn)
	}
	value := reflect.ValueOf(lz.Fn)
	results := value.Call([]reflect.Value{})
	if len(results) == 1 {
		return results[0].Interface(), nil
	}
	values := make([]interface{}, len(results))
	for i, v := range results {
		values[i] = v.Interface()
	}
	return values, nil
}

// DiscardHandler reports success for all writes but does nothing. Useful
// in tests that want the queue's Crit/Warn/Info calls to stay silent.
func DiscardHandler() Handler {
	return FuncHandler(func(r *Record) error {
		return nil
	}, func(Lvl) bool { return false })
}
