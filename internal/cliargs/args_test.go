package cliargs

import "testing"

func TestParseBuild(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Args
	}{
		{
			name: "bare build",
			argv: []string{"build", "main.ax"},
			want: Args{Command: CommandBuild, Src: "main.ax"},
		},
		{
			name: "build with output and target",
			argv: []string{"build", "--output", "release/app", "--target", "x86_64-pc-linux-gnu", "main.ax"},
			want: Args{Command: CommandBuild, Src: "main.ax", Out: "release/app", Target: "x86_64-pc-linux-gnu"},
		},
		{
			name: "run verbose",
			argv: []string{"run", "-vb"},
			want: Args{Command: CommandRun, Verbose: true},
		},
		{
			name: "check",
			argv: []string{"check", "main.ax"},
			want: Args{Command: CommandCheck, Src: "main.ax"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.argv)
			if err != nil {
				t.Fatalf("Parse(%v) returned error: %v", tt.argv, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%v) = %+v, want %+v", tt.argv, got, tt.want)
			}
		})
	}
}

func TestParseCreateProject(t *testing.T) {
	got, err := Parse([]string{"create", "project", "myapp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Args{Command: CommandCreateProject, ProjectName: "myapp"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"frobnicate"},
		{"create", "project"},
		{"build", "--output"},
		{"build", "--bogus"},
	}
	for _, argv := range tests {
		if _, err := Parse(argv); err == nil {
			t.Errorf("Parse(%v) expected an error, got nil", argv)
		}
	}
}
