package e2e

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiffInlineSnippets(t *testing.T) {
	t.Parallel()

	repoRoot, binaryPath := buildCLIBinary(t, "")
	output, err := runCLI(t, repoRoot, binaryPath, "diff",
		"--original-code", "foo($bar);",
		"--expected-code", "foo($bar, $bar);",
		"--output", "json")
	if err != nil {
		t.Fatalf("diff failed: %v\n%s", err, output)
	}

	var res struct {
		Hook       string   `json:"hook"`
		Statements []string `json:"statements"`
	}
	if err := json.Unmarshal([]byte(output), &res); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, output)
	}
	if res.Hook != "Expr_FuncCall" {
		t.Fatalf("hook = %q", res.Hook)
	}
	last := res.Statements[len(res.Statements)-1]
	if last != `$funcCall = new \PhpParser\Node\Expr\FuncCall($name, [$arg, $arg1]);` {
		t.Fatalf("unexpected final statement %q", last)
	}
}

func TestBatchOverFixtures(t *testing.T) {
	t.Parallel()

	repoRoot, binaryPath := buildCLIBinary(t, "")
	output, err := runCLI(t, repoRoot, binaryPath, "batch", filepath.Join(repoRoot, "testdata", "fixtures"), "--jobs", "2")
	if err != nil {
		t.Fatalf("batch failed: %v\n%s", err, output)
	}
	for _, want := range []string{"add_argument", "change_literal", "method_to_static", "unchanged", "4 fixture(s), 0 failed"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}
