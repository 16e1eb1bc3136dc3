package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

type StringID uint32

// NoStringID is the ID of "".
const NoStringID StringID = 0

// Interner maps symbol and literal text of one parse to dense IDs. Like
// ast.Builder it has a single writer; once parsing is done any number of
// goroutines may Lookup.
type Interner struct {
	texts []string
	ids   map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		texts: []string{""},
		ids:   map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, adding it on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.texts))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	// s обычно срез буфера файла; копия не держит его в памяти
	s = strings.Clone(s)
	in.texts = append(in.texts, s)
	in.ids[s] = StringID(n)
	return StringID(n)
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.texts) {
		return "", false
	}
	return in.texts[id], true
}

// Len counts NoStringID too, so it is never less than 1.
func (in *Interner) Len() int {
	return len(in.texts)
}
