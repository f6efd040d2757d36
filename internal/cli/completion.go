package cli

import (
	"fmt"
	"os"
)

func completionCmd() *Command {
	return &Command{
		Name:    "completion",
		Summary: "Print a shell completion script",
		Usage:   "loom completion <bash|zsh|fish>",
		Examples: []Example{
			{Description: "Load completions in the current bash session", Command: "source <(loom completion bash)"},
			{Description: "Install fish completions", Command: "loom completion fish > ~/.config/fish/completions/loom.fish"},
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected a shell name: bash, zsh, or fish")
			}
			script, ok := completionScripts[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish)", args[0])
			}
			fmt.Fprint(os.Stdout, script)
			return nil
		},
	}
}

const completionCommands = "new generate doctor migrate server mcp update completion version help"

var completionScripts = map[string]string{
	"bash": `# bash completion for loom
_loom() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "${prev}" in
        loom)
            COMPREPLY=($(compgen -W "` + completionCommands + `" -- "${cur}"))
            ;;
        generate|g)
            COMPREPLY=($(compgen -W "agent workflow function pipeline llm" -- "${cur}"))
            ;;
        migrate)
            COMPREPLY=($(compgen -W "make up down status" -- "${cur}"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            ;;
        *)
            COMPREPLY=()
            ;;
    esac
}
complete -F _loom loom
`,
	"zsh": `#compdef loom
_loom() {
    local -a commands
    commands=(` + completionCommands + `)
    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi
    case "${words[2]}" in
        generate|g) _values 'component' agent workflow function pipeline llm ;;
        migrate)    _values 'action' make up down status ;;
        completion) _values 'shell' bash zsh fish ;;
    esac
}
_loom "$@"
`,
	"fish": `# fish completion for loom
complete -c loom -f
complete -c loom -n "__fish_use_subcommand" -a "` + completionCommands + `"
complete -c loom -n "__fish_seen_subcommand_from generate g" -a "agent workflow function pipeline llm"
complete -c loom -n "__fish_seen_subcommand_from migrate" -a "make up down status"
complete -c loom -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`,
}
