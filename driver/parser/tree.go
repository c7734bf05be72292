package parser

import (
	"fmt"
	"io"
)

// Node is one node of a concrete parse tree. Terminal leaves carry the matched
// text; non-terminal nodes carry only children. Ownership is strictly
// hierarchical: a node belongs to exactly one parent and the tree is only ever
// mutated through Rename.
type Node struct {
	KindName string
	Text     string
	Row      int
	Col      int
	Children []*Node
}

// Rename relabels nodes whose kind name or text equals oldLabel, walking the
// tree depth-first in pre-order (parent before children, left-to-right
// siblings). At most limit nodes are changed; a negative limit means no bound.
// It returns the number of nodes changed.
func (n *Node) Rename(oldLabel, newLabel string, limit int) int {
	count := 0
	renameNode(n, oldLabel, newLabel, limit, &count)
	return count
}

func renameNode(node *Node, oldLabel, newLabel string, limit int, count *int) {
	if limit >= 0 && *count >= limit {
		return
	}
	changed := false
	if node.KindName == oldLabel {
		node.KindName = newLabel
		changed = true
	}
	if node.Text == oldLabel {
		node.Text = newLabel
		changed = true
	}
	if changed {
		*count++
	}
	for _, child := range node.Children {
		renameNode(child, oldLabel, newLabel, limit, count)
	}
}

// Step is one node visit of a Walker: the node's depth below the root and its
// label. Terminal leaves expose their text through Node.
type Step struct {
	Depth int
	Label string
	Node  *Node
}

// Walker yields the nodes of a tree lazily in depth-first pre-order. A Walker
// is single-use; create a new one to restart the traversal. It never exposes
// parent references, so consumers cannot alias into the tree's ownership.
type Walker struct {
	stack []walkFrame
}

type walkFrame struct {
	node  *Node
	depth int
}

func NewWalker(root *Node) *Walker {
	w := &Walker{}
	if root != nil {
		w.stack = []walkFrame{{node: root}}
	}
	return w
}

// Next returns the next step of the traversal, or false when the tree is
// exhausted.
func (w *Walker) Next() (Step, bool) {
	if len(w.stack) == 0 {
		return Step{}, false
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	// Push children in reverse so the leftmost child is visited first.
	for i := len(top.node.Children) - 1; i >= 0; i-- {
		w.stack = append(w.stack, walkFrame{
			node:  top.node.Children[i],
			depth: top.depth + 1,
		})
	}

	return Step{
		Depth: top.depth,
		Label: top.node.KindName,
		Node:  top.node,
	}, true
}

// Edge is one parent→child edge of a tree, with stable pre-order node IDs.
// Renderers consume edges without seeing the nodes themselves.
type Edge struct {
	ParentID int
	ChildID  int
	Label    string
}

// Edges flattens the tree into its edge list in pre-order. The root has ID 0.
func Edges(root *Node) []Edge {
	var edges []Edge
	nextID := 0
	var walk func(node *Node, id int)
	walk = func(node *Node, id int) {
		for _, child := range node.Children {
			nextID++
			childID := nextID
			edges = append(edges, Edge{
				ParentID: id,
				ChildID:  childID,
				Label:    child.KindName,
			})
			walk(child, childID)
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return edges
}

// Leaves returns the terminal texts of the tree in left-to-right order.
// Concatenating them reproduces the token texts of the parsed input.
func Leaves(root *Node) []string {
	var texts []string
	w := NewWalker(root)
	for {
		step, ok := w.Next()
		if !ok {
			return texts
		}
		if len(step.Node.Children) == 0 && step.Node.Text != "" {
			texts = append(texts, step.Node.Text)
		}
	}
}

// PrintTree writes a tree in a human-readable format to w.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Text != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
