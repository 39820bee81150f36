package txlog

import (
	"bytes"
	"fmt"
	"strconv"
)

// Format formats a Record to a byte slice ready to be written to a Writer.
type Format interface {
	Format(r *Record) []byte
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte { return f(r) }

// TerminalFormat formats records in a human-readable
// "time[lvl] msg key=val ..." line, one record per line.
func TerminalFormat() Format {
	return formatFunc(func(r *Record) []byte {
		var b bytes.Buffer
		fmt.Fprintf(&b, "%s[%s] %s", r.Time.Format("01-02|15:04:05.000"), r.Lvl, r.Msg)
		for i := 0; i < len(r.Ctx); i += 2 {
			k := r.Ctx[i]
			var v interface{}
			if i+1 < len(r.Ctx) {
				v = r.Ctx[i+1]
			}
			fmt.Fprintf(&b, " %v=%s", k, formatValue(v))
		}
		b.WriteByte('\n')
		return b.Bytes()
	})
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case error:
		return strconv.Quote(x.Error())
	case fmt.Stringer:
		return strconv.Quote(x.String())
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprintf("%+v", v)
	}
}
