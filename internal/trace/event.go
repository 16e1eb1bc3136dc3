package trace

import "time"

type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return nameOf(kindNames[:], int(k)) }

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // lex, parse, lint, translate, write
	ScopeFile                    // one source file or batch line
	ScopeForm                    // one top-level form
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeForm: "form"}

func (s Scope) String() string { return nameOf(scopeNames[:], int(s)) }

// Event is what spans and points hand to a Tracer.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots and for points outside any span
	Unit     string // source file or batch line; "" for command-wide events
	Name     string
	Detail   string
	Extra    map[string]string
}
