package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level admits scopes up to a depth.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// levelDepth is the finest scope a level lets through. Off and error admit
// nothing: error-level output only comes from an explicit ring dump.
var levelDepth = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeForm,
}

func (l Level) String() string { return nameOf(levelNames[:], int(l)) }

// ParseLevel is case-insensitive.
func ParseLevel(s string) (Level, error) {
	if i := indexOf(levelNames[:], strings.ToLower(s)); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelDepth) && scope != 0 && scope <= levelDepth[l]
}

func nameOf(names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}

func indexOf(names []string, s string) int {
	for i, n := range names {
		if n != "" && n == s {
			return i
		}
	}
	return -1
}
