package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Format selects how events are rendered.
type Format uint8

const (
	FormatAuto   Format = iota // text, or NDJSON for *.ndjson and *.jsonl outputs
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

var formatNames = [...]string{
	FormatAuto:   "auto",
	FormatText:   "text",
	FormatNDJSON: "ndjson",
}

func (f Format) String() string { return nameOf(formatNames[:], int(f)) }

// ParseFormat accepts the --trace-format names; "json" and "" are aliases.
func ParseFormat(s string) (Format, error) {
	switch s = strings.ToLower(s); s {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	if i := indexOf(formatNames[:], s); i >= 0 {
		return Format(i), nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: %s)", s, strings.Join(formatNames[:], "|"))
}

// FormatEvent renders ev; text timestamps count from start.
func FormatEvent(ev *Event, format Format, start time.Time) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(nil, ev)
	}
	return appendText(nil, ev, start)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Unit     string            `json:"unit,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

const ndjsonTime = "2006-01-02T15:04:05.000000Z07:00"

func appendNDJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(ndjsonTime),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Unit:     ev.Unit,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		data = strconv.AppendQuote([]byte(`{"name":"trace: encode failed","detail":`), err.Error())
		data = append(data, '}')
	}
	return append(append(dst, data...), '\n')
}

// kindGlyphs: → begin, ← end, • point.
var kindGlyphs = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
}

// appendText renders
//
//	[elapsed] <indent by scope>glyph <unit> name (detail) {k=v, ...}
func appendText(dst []byte, ev *Event, start time.Time) []byte {
	var elapsed time.Duration
	if !start.IsZero() && !ev.Time.IsZero() {
		elapsed = ev.Time.Sub(start)
	}
	dst = fmt.Appendf(dst, "[%9.3fms] ", float64(elapsed.Microseconds())/1000)
	for s := ScopeDriver; s < ev.Scope; s++ {
		dst = append(dst, "  "...)
	}
	if int(ev.Kind) < len(kindGlyphs) {
		dst = append(dst, kindGlyphs[ev.Kind]...)
	}
	if ev.Unit != "" {
		dst = append(append(append(dst, '<'), ev.Unit...), "> "...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(append(append(dst, " ("...), ev.Detail...), ')')
	}
	for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		dst = append(append(append(append(dst, sep...), k...), '='), ev.Extra[k]...)
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}
