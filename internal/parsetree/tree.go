package parsetree

// Node is the single parse-tree node type: a label (terminal lexeme or
// non-terminal name) plus ordered children. Terminal nodes never have
// children; every non-root node's Parent points at the node that adopted
// it.
type Node struct {
	Label    string
	Terminal bool
	Children []*Node
	Parent   *Node `json:"-"`
}

func NewNode(label string) *Node {
	return &Node{Label: label}
}

func NewTerminal(label string) *Node {
	return &Node{Label: label, Terminal: true}
}

// AddChild appends child and wires its parent back-reference. Adding to
// a terminal node is a programming error and panics early rather than
// producing a malformed tree.
func (n *Node) AddChild(child *Node) *Node {
	if n.Terminal {
		panic("parsetree: terminal node " + n.Label + " cannot have children")
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// AddTerminal is shorthand for AddChild(NewTerminal(label)).
func (n *Node) AddTerminal(label string) *Node {
	return n.AddChild(NewTerminal(label))
}

// RemoveChild detaches a direct child during recovery rollback. It is a
// no-op when child is not present.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Find returns the first node in preorder whose label matches.
func (n *Node) Find(label string) *Node {
	if n.Label == label {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(label); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in preorder whose label matches.
func (n *Node) FindAll(label string) []*Node {
	var out []*Node
	if n.Label == label {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAll(label)...)
	}
	return out
}

// Count returns the total number of nodes in the subtree.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Tree is the parser's output: the root program node.
type Tree struct {
	Root *Node
}

func New(rootLabel string) *Tree {
	return &Tree{Root: NewNode(rootLabel)}
}
