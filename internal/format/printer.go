package format

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"rackpy/internal/ast"
	"rackpy/internal/source"
)

type Options struct {
	IndentWidth int // отступ тел define/lambda/let; 0 - два пробела
	Width       int // целевая ширина строки; 0 - 80
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 2
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	return o
}

type printer struct {
	builder *ast.Builder
	sf      *source.File
	writer  *Writer
	opt     Options
}

// FormatFile re-prints the top-level forms of sf. roots must come from a parse
// of sf that reported no errors.
func FormatFile(sf *source.File, b *ast.Builder, roots []ast.ExprID, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	pr := printer{
		builder: b,
		sf:      sf,
		writer:  NewWriter(sf),
		opt:     opt.withDefaults(),
	}
	pr.printFile(roots)
	return pr.writer.Bytes(), nil
}

func (p *printer) printFile(roots []ast.ExprID) {
	content := p.sf.Content
	prev := 0
	leading := true
	for _, id := range roots {
		expr := p.builder.Exprs.Get(id)
		if expr == nil {
			continue
		}
		start := clampToContent(int(expr.Span.Start), len(content))
		end := max(clampToContent(int(expr.Span.End), len(content)), start)
		if prev < start {
			p.writeGap(string(content[prev:start]), leading, false)
		} else if !leading {
			p.writer.WriteString("\n")
		}
		if hasComment(content[start:end]) {
			p.writer.CopyRange(start, end)
		} else {
			p.print(id)
		}
		prev = end
		leading = false
	}
	p.writeGap(string(content[prev:]), leading, true)
	p.writer.Finish()
}

// writeGap переносит комментарии между формами, схлопывая пустые строки до одной.
// Формы всегда начинаются с новой строки.
func (p *printer) writeGap(gap string, leading, trailing bool) {
	w := p.writer
	lines := strings.Split(gap, "\n")
	if !trailing {
		// последний кусок - отступ перед следующей формой
		lines = lines[:len(lines)-1]
	}
	first := 0
	if !leading && len(lines) > 0 {
		if c := strings.TrimSpace(lines[0]); c != "" {
			w.WriteString(" " + c)
		}
		first = 1
	}
	wrote := !leading
	blank := false
	for _, line := range lines[first:] {
		c := strings.TrimSpace(line)
		if c == "" {
			blank = true
			continue
		}
		if wrote {
			w.WriteString(separator(blank))
		}
		w.WriteString(c)
		wrote = true
		blank = false
	}
	if !trailing && wrote {
		w.WriteString(separator(blank))
	}
}

func separator(blank bool) string {
	if blank {
		return "\n\n"
	}
	return "\n"
}

func (p *printer) print(id ast.ExprID) {
	flat := p.flat(id)
	if p.writer.Column()+runewidth.StringWidth(flat) <= p.opt.Width {
		p.writer.WriteString(flat)
		return
	}
	p.printBroken(id)
}

// printBroken раскладывает форму, не влезшую в строку. Тела define, lambda и
// let уходят на отступ, аргументы остальных форм выравниваются по первому.
func (p *printer) printBroken(id ast.ExprID) {
	b := p.builder
	w := p.writer
	expr := b.Exprs.Get(id)
	col := w.Column()
	body := col + p.opt.IndentWidth

	switch expr.Kind {
	case ast.ExprOperation:
		if op, ok := b.Exprs.Operation(id); ok {
			p.printArgs("("+op.Op.String(), op.Args, col)
			return
		}
	case ast.ExprCall:
		if call, ok := b.Exprs.Call(id); ok {
			p.printArgs("("+b.Name(call.Callee), call.Args, col)
			return
		}
	case ast.ExprAnd, ast.ExprOr:
		if logical, ok := b.Exprs.Logical(id); ok {
			p.printArgs("("+keyword(expr.Kind), logical.Operands, col)
			return
		}
	case ast.ExprNot, ast.ExprCar, ast.ExprCdr:
		if unary, ok := b.Exprs.Unary(id); ok {
			p.printArgs("("+keyword(expr.Kind), []ast.ExprID{unary.Operand}, col)
			return
		}
	case ast.ExprList:
		if list, ok := b.Exprs.List(id); ok {
			p.printArgs("(list", list.Elems, col)
			return
		}
	case ast.ExprCons:
		if cons, ok := b.Exprs.Cons(id); ok {
			p.printArgs("(cons", []ast.ExprID{cons.Head, cons.Tail}, col)
			return
		}
	case ast.ExprQuoted:
		if list, ok := b.Exprs.List(id); ok {
			w.WriteString("'(")
			p.printAligned(list.Elems, w.Column())
			w.WriteString(")")
			return
		}
	case ast.ExprDefine:
		if def, ok := b.Exprs.Define(id); ok {
			w.WriteString("(define " + b.Name(def.Name))
			w.Break(body)
			p.print(def.Value)
			w.WriteString(")")
			return
		}
	case ast.ExprDefineFunction:
		if fn, ok := b.Exprs.DefineFunction(id); ok {
			w.WriteString("(define " + params(b.Name(fn.Name), b.Names(fn.Params)))
			w.Break(body)
			p.print(fn.Body)
			w.WriteString(")")
			return
		}
	case ast.ExprLambda:
		if fn, ok := b.Exprs.Lambda(id); ok {
			w.WriteString("(lambda " + params("", b.Names(fn.Params)))
			w.Break(body)
			p.print(fn.Body)
			w.WriteString(")")
			return
		}
	case ast.ExprIf:
		if cond, ok := b.Exprs.If(id); ok {
			w.WriteString("(if ")
			branches := []ast.ExprID{cond.Cond, cond.Then}
			if cond.Else.IsValid() {
				branches = append(branches, cond.Else)
			}
			p.printAligned(branches, w.Column())
			w.WriteString(")")
			return
		}
	case ast.ExprLet:
		if let, ok := b.Exprs.Let(id); ok {
			w.WriteString("(let (")
			bindCol := w.Column()
			for i, binding := range let.Bindings {
				if i > 0 {
					w.Break(bindCol)
				}
				w.WriteString("(" + b.Name(binding.Name) + " ")
				p.print(binding.Value)
				w.WriteString(")")
			}
			w.WriteString(")")
			w.Break(body)
			p.print(let.Body)
			w.WriteString(")")
			return
		}
	}
	p.writer.WriteString(p.flat(id))
}

// printArgs пишет голову и аргументы; при слишком длинной голове аргументы
// уходят на отступ вместо выравнивания.
func (p *printer) printArgs(head string, args []ast.ExprID, col int) {
	w := p.writer
	w.WriteString(head)
	if len(args) == 0 {
		w.WriteString(")")
		return
	}
	if w.Column()+1 > col+p.opt.Width/2 {
		w.Break(col + p.opt.IndentWidth)
	} else {
		w.WriteString(" ")
	}
	p.printAligned(args, w.Column())
	w.WriteString(")")
}

func (p *printer) printAligned(ids []ast.ExprID, col int) {
	for i, id := range ids {
		if i > 0 {
			p.writer.Break(col)
		}
		p.print(id)
	}
}

// flat renders id on a single line.
func (p *printer) flat(id ast.ExprID) string {
	var sb strings.Builder
	p.flatTo(&sb, id)
	return sb.String()
}

func (p *printer) flatTo(sb *strings.Builder, id ast.ExprID) {
	b := p.builder
	expr := b.Exprs.Get(id)
	if expr == nil {
		return
	}
	form := func(head string, args ...ast.ExprID) {
		sb.WriteString("(")
		sb.WriteString(head)
		for _, arg := range args {
			sb.WriteString(" ")
			p.flatTo(sb, arg)
		}
		sb.WriteString(")")
	}

	switch expr.Kind {
	case ast.ExprAtom:
		if atom, ok := b.Exprs.Atom(id); ok {
			sb.WriteString(b.Name(atom.Text))
		}
	case ast.ExprOperation:
		if op, ok := b.Exprs.Operation(id); ok {
			form(op.Op.String(), op.Args...)
		}
	case ast.ExprCall:
		if call, ok := b.Exprs.Call(id); ok {
			form(b.Name(call.Callee), call.Args...)
		}
	case ast.ExprAnd, ast.ExprOr:
		if logical, ok := b.Exprs.Logical(id); ok {
			form(keyword(expr.Kind), logical.Operands...)
		}
	case ast.ExprNot, ast.ExprCar, ast.ExprCdr:
		if unary, ok := b.Exprs.Unary(id); ok {
			form(keyword(expr.Kind), unary.Operand)
		}
	case ast.ExprList:
		if list, ok := b.Exprs.List(id); ok {
			form("list", list.Elems...)
		}
	case ast.ExprCons:
		if cons, ok := b.Exprs.Cons(id); ok {
			form("cons", cons.Head, cons.Tail)
		}
	case ast.ExprQuoted:
		if list, ok := b.Exprs.List(id); ok {
			sb.WriteString("'(")
			for i, elem := range list.Elems {
				if i > 0 {
					sb.WriteString(" ")
				}
				p.flatTo(sb, elem)
			}
			sb.WriteString(")")
		}
	case ast.ExprDefine:
		if def, ok := b.Exprs.Define(id); ok {
			form("define "+b.Name(def.Name), def.Value)
		}
	case ast.ExprDefineFunction:
		if fn, ok := b.Exprs.DefineFunction(id); ok {
			form("define "+params(b.Name(fn.Name), b.Names(fn.Params)), fn.Body)
		}
	case ast.ExprLambda:
		if fn, ok := b.Exprs.Lambda(id); ok {
			form("lambda "+params("", b.Names(fn.Params)), fn.Body)
		}
	case ast.ExprIf:
		if cond, ok := b.Exprs.If(id); ok {
			if cond.Else.IsValid() {
				form("if", cond.Cond, cond.Then, cond.Else)
			} else {
				form("if", cond.Cond, cond.Then)
			}
		}
	case ast.ExprLet:
		if let, ok := b.Exprs.Let(id); ok {
			sb.WriteString("(let (")
			for i, binding := range let.Bindings {
				if i > 0 {
					sb.WriteString(" ")
				}
				form(b.Name(binding.Name), binding.Value)
			}
			sb.WriteString(") ")
			p.flatTo(sb, let.Body)
			sb.WriteString(")")
		}
	}
}

// params renders "(name p1 p2)"; an empty name gives a bare parameter list.
func params(name string, names []string) string {
	parts := names
	if name != "" {
		parts = append([]string{name}, names...)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func keyword(kind ast.ExprKind) string {
	switch kind {
	case ast.ExprAnd:
		return "and"
	case ast.ExprOr:
		return "or"
	case ast.ExprNot:
		return "not"
	case ast.ExprCar:
		return "car"
	case ast.ExprCdr:
		return "cdr"
	default:
		return strings.ToLower(kind.String())
	}
}

// hasComment ищет ';' вне строковых литералов (escape-последовательностей нет).
func hasComment(src []byte) bool {
	inString := false
	for _, c := range src {
		switch {
		case c == '"':
			inString = !inString
		case !inString && c == ';':
			return true
		}
	}
	return false
}

func clampToContent(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
