package parsetree

import (
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"
)

// String renders the tree as an indented outline, terminals quoted:
//
//	program
//	└─ class_declaration
//	   ├─ 'class'
//	   └─ 'Point'
func (t *Tree) String() string {
	var b strings.Builder
	printNode(&b, t.Root, "", true, true)
	return b.String()
}

func printNode(b *strings.Builder, n *Node, prefix string, last, root bool) {
	label := n.Label
	if n.Terminal {
		label = "'" + label + "'"
	}

	if root {
		b.WriteString(label + "\n")
	} else {
		connector := "├─ "
		if last {
			connector = "└─ "
		}
		b.WriteString(prefix + connector + label + "\n")
	}

	childPrefix := prefix
	if !root {
		if last {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for i, c := range n.Children {
		printNode(b, c, childPrefix, i == len(n.Children)-1, false)
	}
}

type jsonNode struct {
	Label    string      `json:"label"`
	Terminal bool        `json:"terminal,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func toJSONNode(n *Node) *jsonNode {
	out := &jsonNode{Label: n.Label, Terminal: n.Terminal}
	for _, c := range n.Children {
		out.Children = append(out.Children, toJSONNode(c))
	}
	return out
}

// MarshalJSON serializes the tree without parent back-references, so the
// structure stays acyclic on the wire.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONNode(t.Root))
}

// DOT renders the tree in Graphviz dot syntax for visualization.
func (t *Tree) DOT() string {
	var b strings.Builder
	b.WriteString("digraph parsetree {\n")
	b.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	id := 0
	dotNode(&b, t.Root, &id)
	b.WriteString("}\n")
	return b.String()
}

func dotNode(b *strings.Builder, n *Node, id *int) int {
	self := *id
	*id++
	label := strings.ReplaceAll(n.Label, `"`, `\"`)
	shape := ""
	if n.Terminal {
		shape = ", style=filled, fillcolor=lightgrey"
	}
	fmt.Fprintf(b, "  n%d [label=\"%s\"%s];\n", self, label, shape)
	for _, c := range n.Children {
		child := dotNode(b, c, id)
		fmt.Fprintf(b, "  n%d -> n%d;\n", self, child)
	}
	return self
}
