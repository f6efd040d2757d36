package flow

import "fmt"

// Node is an expression tree node. The four implementations mirror the
// grammar: a named step leaf and the three binary operators.
type Node interface {
	node()
	String() string
}

// StepNode is a leaf naming a pipeline step.
type StepNode struct {
	Name string
}

// SeqNode runs Left, then Right.
type SeqNode struct {
	Left, Right Node
}

// OptNode runs Right only when Left produced a result.
type OptNode struct {
	Left, Right Node
}

// ParNode runs Left and Right concurrently and waits for both.
type ParNode struct {
	Left, Right Node
}

func (*StepNode) node() {}
func (*SeqNode) node()  {}
func (*OptNode) node()  {}
func (*ParNode) node()  {}

func (n *StepNode) String() string { return n.Name }
func (n *SeqNode) String() string  { return fmt.Sprintf("(%s -> %s)", n.Left, n.Right) }
func (n *OptNode) String() string  { return fmt.Sprintf("(%s ->? %s)", n.Left, n.Right) }
func (n *ParNode) String() string  { return fmt.Sprintf("(%s || %s)", n.Left, n.Right) }
