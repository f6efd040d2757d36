package flow

import (
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/naming"
)

// Compiled is the result of compiling an operator expression: the step
// names the pipeline needs method stubs for, and the body of the
// generated Execute method.
//
// The body targets this surrounding declaration:
//
//	func (p *XPipeline) Execute(ctx context.Context, rt *runtime.Context) (int, error)
//
// where each step is a method
//
//	func (p *XPipeline) step<Name>(ctx context.Context, rt *runtime.Context) (any, error)
type Compiled struct {
	Expression string
	Steps      []string // traversal order, duplicate-free
	Body       string   // tab-indented statements, trailing newline
}

// Compile tokenizes, parses, validates, and compiles a raw operator
// expression into an Execute method body.
func Compile(input string) (*Compiled, error) {
	root, err := Parse(input)
	if err != nil {
		return nil, err
	}
	steps, err := Steps(root)
	if err != nil {
		return nil, err
	}

	c := &compiler{}
	lines := c.compileNode(root, 1, "0, err", false)
	lines = append(lines, "\treturn len(rt.Completed()), nil")

	return &Compiled{
		Expression: input,
		Steps:      steps,
		Body:       strings.Join(lines, "\n") + "\n",
	}, nil
}

// compiler holds the per-compile closure counter. Each Optional left
// side and each Parallel side gets a numbered branchN closure and, for
// Optional, a matching resN result binding.
type compiler struct {
	counter int
}

func (c *compiler) nextID() int {
	c.counter++
	return c.counter
}

// compileNode emits the statements for one tree node.
//
// indent is the tab depth of the emitted lines. errRet is the return
// statement arguments on error at this point: "0, err" in the Execute
// body, "nil, err" inside a branch closure. When tail is true the node
// is the last statement of a closure and must return its value; tail
// compilation always ends in a return statement, which keeps every
// closure body total.
func (c *compiler) compileNode(n Node, indent int, errRet string, tail bool) []string {
	ind := strings.Repeat("\t", indent)

	switch n := n.(type) {
	case *StepNode:
		call := fmt.Sprintf("p.step%s(ctx, rt)", naming.Pascal(n.Name))
		if tail {
			return []string{ind + "return " + call}
		}
		return []string{
			fmt.Sprintf("%sif _, err := %s; err != nil {", ind, call),
			fmt.Sprintf("%s\treturn %s", ind, errRet),
			ind + "}",
		}

	case *SeqNode:
		lines := c.compileNode(n.Left, indent, errRet, false)
		return append(lines, c.compileNode(n.Right, indent, errRet, tail)...)

	case *OptNode:
		id := c.nextID()
		branch := fmt.Sprintf("branch%d", id)
		res := fmt.Sprintf("res%d", id)

		lines := []string{fmt.Sprintf("%s%s := func(ctx context.Context) (any, error) {", ind, branch)}
		lines = append(lines, c.compileNode(n.Left, indent+1, "nil, err", true)...)
		lines = append(lines,
			ind+"}",
			fmt.Sprintf("%s%s, err := %s(ctx)", ind, res, branch),
			ind+"if err != nil {",
			fmt.Sprintf("%s\treturn %s", ind, errRet),
			ind+"}",
			fmt.Sprintf("%sif %s != nil {", ind, res),
		)
		lines = append(lines, c.compileNode(n.Right, indent+1, errRet, false)...)
		lines = append(lines, ind+"}")
		if tail {
			lines = append(lines, fmt.Sprintf("%sreturn %s, nil", ind, res))
		}
		return lines

	case *ParNode:
		left := fmt.Sprintf("branch%d", c.nextID())
		right := fmt.Sprintf("branch%d", c.nextID())

		lines := []string{fmt.Sprintf("%s%s := func(ctx context.Context) (any, error) {", ind, left)}
		lines = append(lines, c.compileNode(n.Left, indent+1, "nil, err", true)...)
		lines = append(lines, ind+"}")
		lines = append(lines, fmt.Sprintf("%s%s := func(ctx context.Context) (any, error) {", ind, right))
		lines = append(lines, c.compileNode(n.Right, indent+1, "nil, err", true)...)
		lines = append(lines, ind+"}")

		gather := fmt.Sprintf("runtime.Gather(ctx, %s, %s)", left, right)
		if tail {
			return append(lines, ind+"return "+gather)
		}
		return append(lines,
			fmt.Sprintf("%sif _, err := %s; err != nil {", ind, gather),
			fmt.Sprintf("%s\treturn %s", ind, errRet),
			ind+"}",
		)

	default:
		panic(fmt.Sprintf("flow: unknown node type %T", n))
	}
}
