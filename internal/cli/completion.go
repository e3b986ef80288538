package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	switch c.Shell {
	case "bash":
		return c.generateBash(globals)
	case "zsh":
		return c.generateZsh(globals)
	case "fish":
		return c.generateFish(globals)
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
}

func (c *CompletionCmd) generateBash(globals *Globals) error {
	script := `# avdoctor bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(avdoctor completion bash)"

_avdoctor_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="diagnose fix export info watch config version completion"
    local global_flags="-f --format -q --quiet -v --verbose --no-color"

    case "${prev}" in
        avdoctor)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "text json yaml" -- "${cur}"))
            return
            ;;
        -o|--output)
            _filedir
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        diagnose)
            COMPREPLY=($(compgen -W "-p --parallel -e --export ${global_flags}" -- "${cur}"))
            ;;
        fix)
            COMPREPLY=($(compgen -W "-y --yes --pick --timeout --parallel ${global_flags}" -- "${cur}"))
            ;;
        export)
            COMPREPLY=($(compgen -W "-o --output --parallel ${global_flags}" -- "${cur}"))
            ;;
        watch)
            COMPREPLY=($(compgen -W "-i --interval --parallel --tmux --session ${global_flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _avdoctor_completions avdoctor
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateZsh(globals *Globals) error {
	script := `#compdef avdoctor
# avdoctor zsh completion script
# Add to ~/.zshrc:
#   eval "$(avdoctor completion zsh)"

_avdoctor() {
    local -a commands
    commands=(
        'diagnose:Run all diagnostics and print the report'
        'fix:Run diagnostics and apply fix commands'
        'export:Write fix commands to an executable script'
        'info:Show host system information'
        'watch:Re-run diagnostics on an interval'
        'config:Show or manage configuration'
        'version:Show version information'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '-f[Output format]:format:(text json yaml)'
        '--format[Output format]:format:(text json yaml)'
        '-q[Suppress progress and notices]'
        '--quiet[Suppress progress and notices]'
        '-v[Show fix commands and debug logging]'
        '--verbose[Show fix commands and debug logging]'
        '--no-color[Disable colored output]'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                diagnose)
                    _arguments \
                        '-p[Collect subsystems concurrently]' \
                        '--parallel[Collect subsystems concurrently]' \
                        '-e[Also write the fix script]' \
                        '--export[Also write the fix script]' \
                        $global_opts
                    ;;
                fix)
                    _arguments \
                        '-y[Apply fixes without prompting]' \
                        '--yes[Apply fixes without prompting]' \
                        '--pick[Choose which fixes to apply interactively]' \
                        '--timeout[Per-command timeout]:duration:' \
                        '--parallel[Collect subsystems concurrently]' \
                        $global_opts
                    ;;
                export)
                    _arguments \
                        '-o[Script path]:path:_files' \
                        '--output[Script path]:path:_files' \
                        '--parallel[Collect subsystems concurrently]' \
                        $global_opts
                    ;;
                watch)
                    _arguments \
                        '-i[Delay between diagnostic runs]:duration:' \
                        '--interval[Delay between diagnostic runs]:duration:' \
                        '--parallel[Collect subsystems concurrently]' \
                        '--tmux[Mirror the report into a tmux session]' \
                        '--session[Custom tmux session name]:name:' \
                        $global_opts
                    ;;
                config)
                    _arguments '1:subcommand:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

compdef _avdoctor avdoctor
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateFish(globals *Globals) error {
	script := `# avdoctor fish completion script
# Add to ~/.config/fish/completions/avdoctor.fish

# Disable file completion by default
complete -c avdoctor -f

# Commands
complete -c avdoctor -n "__fish_use_subcommand" -a "diagnose" -d "Run all diagnostics and print the report"
complete -c avdoctor -n "__fish_use_subcommand" -a "fix" -d "Run diagnostics and apply fix commands"
complete -c avdoctor -n "__fish_use_subcommand" -a "export" -d "Write fix commands to an executable script"
complete -c avdoctor -n "__fish_use_subcommand" -a "info" -d "Show host system information"
complete -c avdoctor -n "__fish_use_subcommand" -a "watch" -d "Re-run diagnostics on an interval"
complete -c avdoctor -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c avdoctor -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c avdoctor -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c avdoctor -s f -l format -d "Output format" -xa "text json yaml"
complete -c avdoctor -s q -l quiet -d "Suppress progress and notices"
complete -c avdoctor -s v -l verbose -d "Show fix commands and debug logging"
complete -c avdoctor -l no-color -d "Disable colored output"

# Diagnose command
complete -c avdoctor -n "__fish_seen_subcommand_from diagnose" -s p -l parallel -d "Collect subsystems concurrently"
complete -c avdoctor -n "__fish_seen_subcommand_from diagnose" -s e -l export -d "Also write the fix script"

# Fix command
complete -c avdoctor -n "__fish_seen_subcommand_from fix" -s y -l yes -d "Apply fixes without prompting"
complete -c avdoctor -n "__fish_seen_subcommand_from fix" -l pick -d "Choose which fixes to apply interactively"
complete -c avdoctor -n "__fish_seen_subcommand_from fix" -l timeout -d "Per-command timeout"
complete -c avdoctor -n "__fish_seen_subcommand_from fix" -l parallel -d "Collect subsystems concurrently"

# Export command
complete -c avdoctor -n "__fish_seen_subcommand_from export" -s o -l output -d "Script path" -r
complete -c avdoctor -n "__fish_seen_subcommand_from export" -l parallel -d "Collect subsystems concurrently"

# Watch command
complete -c avdoctor -n "__fish_seen_subcommand_from watch" -s i -l interval -d "Delay between diagnostic runs"
complete -c avdoctor -n "__fish_seen_subcommand_from watch" -l parallel -d "Collect subsystems concurrently"
complete -c avdoctor -n "__fish_seen_subcommand_from watch" -l tmux -d "Mirror the report into a tmux session"
complete -c avdoctor -n "__fish_seen_subcommand_from watch" -l session -d "Custom tmux session name"

# Config command
complete -c avdoctor -n "__fish_seen_subcommand_from config" -a "show path generate"

# Completion command
complete -c avdoctor -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}
