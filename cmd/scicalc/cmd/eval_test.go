package cmd

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func TestEvaluatorRun(t *testing.T) {
	tests := []struct {
		name   string
		srcs   []string
		verb   string
		echo   bool
		want   string
		failed int
	}{
		{
			name: "chain",
			srcs: []string{"3→B", "2B", "Ans+1"},
			want: "3\n6\n7\n",
		},
		{
			name: "verb",
			srcs: []string{"1/4"},
			verb: "%.3f",
			want: "0.250\n",
		},
		{
			name: "echo",
			srcs: []string{"1+2×3"},
			echo: true,
			want: "([1] + [(2) × (3)]) : 7\n",
		},
		{
			name:   "errors",
			srcs:   []string{"1/0", "2+", "5"},
			want:   "Math ERROR: division by zero in ÷\nSyntax ERROR: ",
			failed: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := evaluator{
				ctx:     scicalc.NewContext(),
				verb:    tt.verb,
				echo:    tt.echo,
				history: true,
			}
			var b strings.Builder
			n := e.run(&b, tt.srcs)
			if n != tt.failed {
				t.Errorf("%d failed, want %d", n, tt.failed)
			}
			if !strings.HasPrefix(b.String(), tt.want) {
				t.Errorf("output %q does not start with %q", b.String(), tt.want)
			}
			if got := e.ctx.History().Len(); got != len(tt.srcs)-tt.failed {
				t.Errorf("history has %d entries, want %d", got, len(tt.srcs)-tt.failed)
			}
		})
	}
}

func TestGiven(t *testing.T) {
	ctx := scicalc.NewContext()
	if err := given(ctx, "A=2^10"); err != nil {
		t.Fatalf("given() error = %v", err)
	}
	if err := given(ctx, " B = A/4"); err != nil {
		t.Fatalf("given() error = %v", err)
	}
	if got := ctx.RecallVariable(scicalc.RegB); got != 256 {
		t.Errorf("B = %v, want 256", got)
	}
	bad := []string{"A", "Q=1", "Ans=1", "A=1+", "A=0^0"}
	for _, d := range bad {
		if err := given(ctx, d); err == nil {
			t.Errorf("given(%q) succeeded", d)
		}
	}
}

func TestReadExprs(t *testing.T) {
	got, err := readExprs(strings.NewReader("1+\n2\n\n3\n"), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "1+\n2\n\n3\n" {
		t.Errorf("whole input: got %q", got)
	}
	got, err = readExprs(strings.NewReader("1+2\n  \n3\n"), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "1+2" || got[1] != "3" {
		t.Errorf("lines: got %q", got)
	}
	got, err = readExprs(strings.NewReader(" \n"), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("blank input: got %q", got)
	}
}
