package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"rackpy/internal/source"
	"rackpy/internal/token"
)

// TokenJSON is one entry of `rackpy tokenize --format json`.
type TokenJSON struct {
	Kind    string       `json:"kind"`
	Class   string       `json:"class,omitempty"`
	Text    string       `json:"text,omitempty"`
	Bytes   [2]uint32    `json:"bytes"`
	Start   PositionJSON `json:"start"`
	End     PositionJSON `json:"end"`
	Leading []string     `json:"leading,omitempty"`
}

// untilEOF trims anything a lexer handed out after EOF.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

func triviaKinds(tok token.Token) []string {
	var kinds []string
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind.String())
	}
	return kinds
}

// FormatTokensPretty печатает по строке на токен: номер, вид, текст, позиция.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var sb strings.Builder
	for i, tok := range untilEOF(tokens) {
		start, end := fs.Resolve(tok.Span)
		fmt.Fprintf(&sb, "%3d: %-15s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %s-%s", start, end)
		if kinds := triviaKinds(tok); kinds != nil {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(kinds, ", "))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTokensJSON пишет массив TokenJSON с отступами.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	tokens = untilEOF(tokens)
	out := make([]TokenJSON, len(tokens))
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		out[i] = TokenJSON{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Bytes:   [2]uint32{tok.Span.Start, tok.Span.End},
			Start:   PositionJSON{Line: start.Line, Col: start.Col},
			End:     PositionJSON{Line: end.Line, Col: end.Col},
			Leading: triviaKinds(tok),
		}
		if class := tok.Kind.Class(); class != token.ClassNone {
			out[i].Class = class.String()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
