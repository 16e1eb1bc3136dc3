package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"rackpy/internal/ast"
	"rackpy/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func toTreeNode(node *ASTNodeOutput, fs *source.FileSet) *treeNode {
	out := &treeNode{label: nodeLabel(node, fs)}
	for i := range node.Children {
		out.children = append(out.children, toTreeNode(&node.Children[i], fs))
	}
	return out
}

// FormatASTTree рисует каждую форму отдельным деревом сверху вниз:
//
//	   Define x
//	       |
//	  Operation +
//	   /   |    \
//	Atom 1   Atom 2
func FormatASTTree(w io.Writer, builder *ast.Builder, roots []ast.ExprID, fs *source.FileSet) error {
	for i, id := range roots {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		node := BuildASTOutput(builder, id)
		for _, line := range renderTree(toTreeNode(&node, fs)).lines {
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// columns between sibling subtrees
const treeSpacing = 3

// block is a rendered subtree. anchor is the column its parent's edge
// points at.
type block struct {
	lines  []string
	width  int
	anchor int
}

func leafBlock(label string) block {
	w := runewidth.StringWidth(label)
	return block{lines: []string{label}, width: w, anchor: w / 2}
}

// row is line i padded to the block width; rows past the end are blank.
func (b block) row(i int) string {
	if i < len(b.lines) {
		return padRight(b.lines[i], b.width)
	}
	return strings.Repeat(" ", b.width)
}

func (b block) indent(n int) block {
	pad := strings.Repeat(" ", n)
	for i := range b.lines {
		b.lines[i] = pad + b.lines[i]
	}
	b.width += n
	b.anchor += n
	return b
}

// beside lays blocks out left to right and returns where each anchor
// ended up in the joined block.
func beside(blocks []block) (block, []int) {
	var out block
	anchors := make([]int, len(blocks))
	height := 0
	for i, b := range blocks {
		if i > 0 {
			out.width += treeSpacing
		}
		anchors[i] = out.width + b.anchor
		out.width += b.width
		height = max(height, len(b.lines))
	}
	gap := strings.Repeat(" ", treeSpacing)
	parts := make([]string, len(blocks))
	for r := range height {
		for i, b := range blocks {
			parts[i] = b.row(r)
		}
		out.lines = append(out.lines, strings.Join(parts, gap))
	}
	return out, anchors
}

func renderTree(node *treeNode) block {
	if len(node.children) == 0 {
		return leafBlock(node.label)
	}
	kids := make([]block, len(node.children))
	for i, c := range node.children {
		kids[i] = renderTree(c)
	}
	below, anchors := beside(kids)

	labelWidth := runewidth.StringWidth(node.label)
	root := labelWidth / 2
	shift := (anchors[0]+anchors[len(anchors)-1])/2 - root
	if shift < 0 {
		// метка шире детей: сдвигаем детей вправо
		below = below.indent(-shift)
		for i := range anchors {
			anchors[i] -= shift
		}
		shift = 0
	}
	root += shift
	width := max(below.width, shift+labelWidth, root+1)

	edges := []byte(strings.Repeat(" ", width))
	edges[root] = '|'
	for _, a := range anchors {
		switch {
		case a < root:
			edges[a] = '/'
		case a > root:
			edges[a] = '\\'
		}
	}

	lines := make([]string, 0, 2+len(below.lines))
	lines = append(lines, padRight(strings.Repeat(" ", shift)+node.label, width), string(edges))
	for _, l := range below.lines {
		lines = append(lines, padRight(l, width))
	}
	return block{lines: lines, width: width, anchor: root}
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
