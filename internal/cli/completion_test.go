package cli

import (
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	algos := []string{"big", "doubling", "list"}
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"complete -F _fibwhole_completions fibwhole", `algorithms="big doubling list all"`, "--gc)", `compgen -W "auto aggressive disabled"`, "--output|-o)"}},
		{"zsh", []string{"#compdef fibwhole", "'--algo[Algorithm to use]:algorithm:($algorithms)'", "{-q,--quiet}"}},
		{"fish", []string{"complete -c fibwhole -l algo -d 'Algorithm to use' -xa 'big doubling list all'", "complete -c fibwhole -l config -d 'YAML configuration file' -rF"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			if err := GenerateCompletion(&out, tt.shell, algos); err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&strings.Builder{}, "tcsh", nil); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistry_Unique(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			if seen[name] {
				t.Errorf("duplicate flag %s", name)
			}
			seen[name] = true
		}
	}
}
