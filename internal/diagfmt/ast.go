package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"rackpy/internal/ast"
	"rackpy/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// BuildASTOutput собирает дерево вывода для одного выражения.
func BuildASTOutput(builder *ast.Builder, id ast.ExprID) ASTNodeOutput {
	expr := builder.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	node := ASTNodeOutput{Type: expr.Kind.String(), Span: expr.Span}
	exprs := builder.Exprs

	switch expr.Kind {
	case ast.ExprAtom:
		if d, ok := exprs.Atom(id); ok {
			node.Text = builder.Name(d.Text)
			node.Fields = map[string]any{"atom": d.Kind.String()}
		}
		return node
	case ast.ExprOperation:
		if d, ok := exprs.Operation(id); ok {
			node.Text = d.Op.String()
		}
	case ast.ExprCall:
		if d, ok := exprs.Call(id); ok {
			node.Text = builder.Name(d.Callee)
		}
	case ast.ExprDefine:
		if d, ok := exprs.Define(id); ok {
			node.Text = builder.Name(d.Name)
		}
	case ast.ExprDefineFunction:
		if d, ok := exprs.DefineFunction(id); ok {
			node.Text = builder.Name(d.Name)
			node.Fields = map[string]any{"params": builder.Names(d.Params)}
		}
	case ast.ExprLambda:
		if d, ok := exprs.Lambda(id); ok {
			node.Fields = map[string]any{"params": builder.Names(d.Params)}
		}
	case ast.ExprLet:
		if d, ok := exprs.Let(id); ok {
			for _, b := range d.Bindings {
				node.Children = append(node.Children, ASTNodeOutput{
					Type:     "Binding",
					Text:     builder.Name(b.Name),
					Span:     b.Span,
					Children: []ASTNodeOutput{BuildASTOutput(builder, b.Value)},
				})
			}
			node.Children = append(node.Children, BuildASTOutput(builder, d.Body))
		}
		return node
	}

	for _, child := range exprs.Children(id) {
		node.Children = append(node.Children, BuildASTOutput(builder, child))
	}
	return node
}

func nodeLabel(node *ASTNodeOutput, fs *source.FileSet) string {
	var sb strings.Builder
	sb.WriteString(node.Type)
	if node.Text != "" {
		sb.WriteString(" ")
		sb.WriteString(node.Text)
	}
	if params, ok := node.Fields["params"].([]string); ok {
		fmt.Fprintf(&sb, " (%s)", strings.Join(params, " "))
	}
	if fs != nil {
		fmt.Fprintf(&sb, " [%s]", formatSpan(node.Span, fs))
	}
	return sb.String()
}

// FormatASTPretty печатает формы как дерево с отступами.
// fs == nil отключает позиции.
func FormatASTPretty(w io.Writer, builder *ast.Builder, roots []ast.ExprID, fs *source.FileSet) error {
	if _, err := fmt.Fprintf(w, "Program (%d forms)\n", len(roots)); err != nil {
		return err
	}
	for i, id := range roots {
		node := BuildASTOutput(builder, id)
		writePretty(w, &node, fs, "", i == len(roots)-1)
	}
	return nil
}

// FormatASTIndented печатает формы так, как их показывает интерактивный режим:
// корень start, по два пробела на уровень, без позиций.
func FormatASTIndented(w io.Writer, builder *ast.Builder, roots []ast.ExprID) error {
	if _, err := io.WriteString(w, "start\n"); err != nil {
		return err
	}
	for _, id := range roots {
		node := BuildASTOutput(builder, id)
		if err := writeIndented(w, &node, 1); err != nil {
			return err
		}
	}
	return nil
}

func writeIndented(w io.Writer, node *ASTNodeOutput, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), nodeLabel(node, nil)); err != nil {
		return err
	}
	for i := range node.Children {
		if err := writeIndented(w, &node.Children[i], depth+1); err != nil {
			return err
		}
	}
	return nil
}

func writePretty(w io.Writer, node *ASTNodeOutput, fs *source.FileSet, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(node, fs))
	for i := range node.Children {
		writePretty(w, &node.Children[i], fs, prefix+next, i == len(node.Children)-1)
	}
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, roots []ast.ExprID) error {
	children := make([]ASTNodeOutput, 0, len(roots))
	for _, id := range roots {
		children = append(children, BuildASTOutput(builder, id))
	}
	output := ASTNodeOutput{
		Type:     "Program",
		Children: children,
	}
	if len(children) > 0 {
		output.Span = children[0].Span.Cover(children[len(children)-1].Span)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if hasFile(fs, span) {
		start, end := fs.Resolve(span)
		return start.String() + "-" + end.String()
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
