package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testTree() (*Command, *[]string) {
	var calls []string
	record := func(name string) func([]string) error {
		return func(args []string) error {
			calls = append(calls, name+" "+strings.Join(args, " "))
			return nil
		}
	}
	root := &Command{
		Name: "loom",
		Subcommands: []*Command{
			{Name: "generate", Aliases: []string{"g"}, Subcommands: []*Command{
				{Name: "agent", Run: record("agent")},
			}},
			{Name: "doctor", Run: record("doctor")},
		},
	}
	return root, &calls
}

func TestExecuteDispatch(t *testing.T) {
	root, calls := testTree()
	if err := root.Execute([]string{"generate", "agent", "Sync"}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0] != "agent Sync" {
		t.Errorf("calls = %v", *calls)
	}
}

func TestExecuteAlias(t *testing.T) {
	root, calls := testTree()
	if err := root.Execute([]string{"g", "agent", "Sync"}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(*calls) != 1 {
		t.Errorf("alias did not dispatch: %v", *calls)
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root, _ := testTree()
	err := root.Execute([]string{"doctr"})
	if err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "doctor"`) {
		t.Errorf("error should suggest doctor: %v", err)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	var force bool
	cmd := &Command{
		Name: "thing",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("thing", pflag.ContinueOnError)
			fs.BoolVar(&force, "force", false, "")
			return fs
		},
		Run: func(args []string) error { return nil },
	}
	err := cmd.Execute([]string{"--forc"})
	if err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("error should suggest --force: %v", err)
	}
}

func TestExecuteSubcommandRequired(t *testing.T) {
	root, _ := testTree()
	if err := root.Execute(nil); err == nil {
		t.Fatal("expected an error when no subcommand is given")
	}
}

func TestPrintHelpListsCommandsAndAliases(t *testing.T) {
	root, _ := testTree()
	var b strings.Builder
	root.PrintHelp(&b)
	out := b.String()
	for _, want := range []string{"generate, g", "doctor", "Run 'loom <command> --help'"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestPath(t *testing.T) {
	root, _ := testTree()
	gen := root.Subcommands[0]
	gen.parent = root
	agent := gen.Subcommands[0]
	agent.parent = gen
	if got := agent.path(); got != "loom generate agent" {
		t.Errorf("path = %q", got)
	}
}

// --- suggestions ---

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"doctor", "doctor", 0},
		{"doctr", "doctor", 1},
		{"serve", "server", 1},
		{"kitten", "sitting", 3},
		{"abc", "", 3},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClosestCommandTooFar(t *testing.T) {
	root, _ := testTree()
	if hint := closestCommand("xyzzy", root.Subcommands); hint != "" {
		t.Errorf("expected no suggestion, got %q", hint)
	}
}

// --- root tree ---

func TestRootTreeIsComplete(t *testing.T) {
	root := Root()
	want := []string{"new", "generate", "doctor", "migrate", "server", "mcp", "update", "completion", "version"}
	if len(root.Subcommands) != len(want) {
		t.Fatalf("root has %d subcommands, want %d", len(root.Subcommands), len(want))
	}
	for i, name := range want {
		if root.Subcommands[i].Name != name {
			t.Errorf("subcommand %d = %q, want %q", i, root.Subcommands[i].Name, name)
		}
	}
}

func TestSplitProviders(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"  ", 0},
		{"openai", 1},
		{"openai,anthropic", 2},
		{" openai , anthropic , ", 2},
	}
	for _, tt := range tests {
		if got := splitProviders(tt.in); len(got) != tt.want {
			t.Errorf("splitProviders(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
