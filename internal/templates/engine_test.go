package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleRule() RuleData {
	return RuleData{
		Name:          "AddBarArgumentRector",
		Namespace:     `App\Rector`,
		NodeNamespace: `PhpParser\Node`,
		Description:   "adds a second argument",
		Hook:          "Expr_FuncCall",
		Statements: []string{
			`$name = new \PhpParser\Node\Name('foo');`,
			`$funcCall = new \PhpParser\Node\Expr\FuncCall($name, []);`,
		},
		Root:     "$funcCall",
		Original: "foo($bar);\n",
		Expected: "foo($bar, $bar);\n",
	}
}

func TestTemplateEngine_LoadsTemplates(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	want := []string{"fixture", "go_rule", "php_rule"}
	if diff := cmp.Diff(want, eng.GetAvailableTemplates()); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateEngine_RenderMissing(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	if _, err := eng.Render("agent_prompt", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestScaffoldPHP(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	out := t.TempDir()
	files, err := eng.Scaffold(sampleRule(), "php", out, false)
	if err != nil {
		t.Fatalf("Scaffold error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	rule, err := os.ReadFile(filepath.Join(out, "rules", "AddBarArgumentRector.php"))
	if err != nil {
		t.Fatalf("rule not written: %v", err)
	}
	for _, want := range []string{
		`namespace App\Rector;`,
		`final class AddBarArgumentRector extends AbstractRector`,
		`return [\PhpParser\Node\Expr\FuncCall::class];`,
		`        $name = new \PhpParser\Node\Name('foo');`,
		`        return $funcCall;`,
		`new CodeSample('foo($bar);', 'foo($bar, $bar);')`,
	} {
		if !strings.Contains(string(rule), want) {
			t.Fatalf("rule missing %q:\n%s", want, rule)
		}
	}

	fixture, err := os.ReadFile(filepath.Join(out, "fixtures", "add_bar_argument_rector.php.inc"))
	if err != nil {
		t.Fatalf("fixture not written: %v", err)
	}
	if got, want := string(fixture), "foo($bar);\n-----\nfoo($bar, $bar);\n"; got != want {
		t.Fatalf("fixture = %q, want %q", got, want)
	}
}

func TestScaffoldPHPReservedHooks(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	tests := map[string]string{
		"Stmt_Return":   `return [\PhpParser\Node\Stmt\Return_::class];`,
		"Scalar_String": `return [\PhpParser\Node\Scalar\String_::class];`,
		"Expr_New":      `return [\PhpParser\Node\Expr\New_::class];`,
		"Expr_Array":    `return [\PhpParser\Node\Expr\Array_::class];`,
	}
	for hook, want := range tests {
		data := sampleRule()
		data.Hook = hook
		files, err := eng.Scaffold(data, "php", t.TempDir(), true)
		if err != nil {
			t.Fatalf("Scaffold error: %v", err)
		}
		if !strings.Contains(files[0].Content, want) {
			t.Fatalf("rule for %s missing %q:\n%s", hook, want, files[0].Content)
		}
	}
	if got := (RuleData{NodeNamespace: `PhpParser\Node`}).HookClass(); got != `PhpParser\Node` {
		t.Fatalf("HookClass without hook = %q", got)
	}
}

func TestScaffoldGoDryRun(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	data := sampleRule()
	data.Name = "AddBarArgument"
	data.Statements = []string{`funcCall := ast.MustNew("Expr_FuncCall", name, ast.List{})`}
	data.Root = "funcCall"

	out := t.TempDir()
	files, err := eng.Scaffold(data, "go", out, true)
	if err != nil {
		t.Fatalf("Scaffold error: %v", err)
	}
	if files[0].Path != filepath.Join(out, "rules", "add_bar_argument.go") {
		t.Fatalf("rule path = %s", files[0].Path)
	}
	for _, want := range []string{
		"func AddBarArgument(node *ast.Node) *ast.Node {",
		`if node == nil || node.Kind != "Expr_FuncCall" {`,
		"\treturn funcCall\n",
	} {
		if !strings.Contains(files[0].Content, want) {
			t.Fatalf("go rule missing %q:\n%s", want, files[0].Content)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "rules")); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote files: %v", err)
	}
}

func TestScaffoldRejects(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	bad := sampleRule()
	bad.Name = "../escape"
	if _, err := eng.Scaffold(bad, "php", t.TempDir(), true); err == nil {
		t.Fatal("expected error for invalid rule name")
	}
	if _, err := eng.Scaffold(sampleRule(), "rust", t.TempDir(), true); err == nil {
		t.Fatal("expected error for unknown emitter")
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"AddBarArgumentRector": "add_bar_argument_rector",
		"HTTPClientRector":     "http_client_rector",
		"rule2Fix":             "rule2_fix",
		"plain":                "plain",
	}
	for in, want := range tests {
		if got := SnakeCase(in); got != want {
			t.Fatalf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
