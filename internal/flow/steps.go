package flow

// Steps returns every step name in the tree in left-to-right, top-down
// order, and fails on the first name that appears twice.
func Steps(root Node) ([]string, error) {
	var names []string
	collect(root, &names)

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, &ValidationError{Kind: ErrDuplicateStep, Step: name}
		}
		seen[name] = true
	}
	return names, nil
}

func collect(n Node, out *[]string) {
	switch n := n.(type) {
	case *StepNode:
		*out = append(*out, n.Name)
	case *SeqNode:
		collect(n.Left, out)
		collect(n.Right, out)
	case *OptNode:
		collect(n.Left, out)
		collect(n.Right, out)
	case *ParNode:
		collect(n.Left, out)
		collect(n.Right, out)
	}
}
