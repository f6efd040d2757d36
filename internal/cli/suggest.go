package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestion threshold: only offer a name within this edit distance.
const maxEditDistance = 3

// closestCommand returns the subcommand name (or alias) nearest to the
// unknown input, or "" when nothing is close enough.
func closestCommand(unknown string, commands []*Command) string {
	best := ""
	bestDist := maxEditDistance + 1
	for _, cmd := range commands {
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			if d := editDistance(unknown, name); d < bestDist {
				bestDist = d
				best = name
			}
		}
	}
	return best
}

// closestFlag finds the first unrecognized flag in args and returns the
// nearest defined flag, with its dash prefix.
func closestFlag(args []string, fs *pflag.FlagSet) string {
	var defined []string
	fs.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if fs.Lookup(name) != nil {
			continue
		}

		best := ""
		bestDist := maxEditDistance + 1
		for _, candidate := range defined {
			if d := editDistance(name, candidate); d < bestDist {
				bestDist = d
				best = candidate
			}
		}
		if best == "" {
			return ""
		}
		if len(best) == 1 {
			return "-" + best
		}
		return "--" + best
	}
	return ""
}

// editDistance is the Levenshtein distance between two strings, using a
// single rolling row of the distance matrix.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(b); j++ {
		cur := make([]int, len(a)+1)
		cur[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[i] = min(prev[i]+1, cur[i-1]+1, prev[i-1]+cost)
		}
		prev = cur
	}
	return prev[len(a)]
}
