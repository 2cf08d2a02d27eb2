package synth

import (
	"errors"
	"testing"

	"github.com/getlawrence/nodediff/internal/ast"
	"github.com/getlawrence/nodediff/internal/bindings"
	"github.com/google/go-cmp/cmp"
)

func variable(name string) *ast.Node { return ast.MustNew(ast.KindVariable, name) }

func arg(v *ast.Node) *ast.Node { return ast.MustNew(ast.KindArg, v) }

// fooCall builds foo($bar, $bar).
func fooCall() *ast.Node {
	return ast.MustNew("Expr_FuncCall",
		ast.MustNew(ast.KindName, []string{"foo"}),
		ast.List{arg(variable("bar")), arg(variable("bar"))},
	)
}

func TestSynthesizePHP(t *testing.T) {
	table := bindings.Table{"bar": ast.Path{Steps: []ast.Step{{Field: "args", Index: 0}, {Field: "value", Index: -1}}, Leaf: "name"}}
	ctx := NewContext(table, NewPHPEmitter("node", DefaultNamespace))

	temp, stmts, err := Synthesize(fooCall(), ctx)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if temp != "$funcCall" {
		t.Fatalf("temp = %q", temp)
	}
	want := []string{
		`$name = new \PhpParser\Node\Name('foo');`,
		`$variable = new \PhpParser\Node\Expr\Variable($node->args[0]->value->name);`,
		`$arg = new \PhpParser\Node\Arg($variable);`,
		`$variable1 = new \PhpParser\Node\Expr\Variable($node->args[0]->value->name);`,
		`$arg1 = new \PhpParser\Node\Arg($variable1);`,
		`$funcCall = new \PhpParser\Node\Expr\FuncCall($name, [$arg, $arg1]);`,
	}
	if diff := cmp.Diff(want, stmts); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeUnboundVariableIsLiteral(t *testing.T) {
	ctx := NewContext(nil, nil)
	_, stmts, err := Synthesize(variable("x"), ctx)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	want := []string{`$variable = new \PhpParser\Node\Expr\Variable('x');`}
	if diff := cmp.Diff(want, stmts); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeBindsOnlyVariableLeaves(t *testing.T) {
	// An identifier named like a bound variable stays a literal.
	table := bindings.Table{"p": ast.Path{Leaf: "name"}}
	ctx := NewContext(table, nil)
	fetch := ast.MustNew("Expr_PropertyFetch", variable("o"), ast.MustNew(ast.KindIdentifier, "p"))

	_, stmts, err := Synthesize(fetch, ctx)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	want := []string{
		`$variable = new \PhpParser\Node\Expr\Variable('o');`,
		`$identifier = new \PhpParser\Node\Identifier('p');`,
		`$propertyFetch = new \PhpParser\Node\Expr\PropertyFetch($variable, $identifier);`,
	}
	if diff := cmp.Diff(want, stmts); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeNullAndEscaping(t *testing.T) {
	ret := ast.MustNew("Stmt_Return", nil)
	_, stmts, err := Synthesize(ret, NewContext(nil, nil))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if want := `$return_ = new \PhpParser\Node\Stmt\Return_(null);`; stmts[0] != want {
		t.Fatalf("got %s, want %s", stmts[0], want)
	}

	str := ast.MustNew("Scalar_String", `it's a \ test`)
	_, stmts, err = Synthesize(str, NewContext(nil, nil))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if want := `$string_ = new \PhpParser\Node\Scalar\String_('it\'s a \\ test');`; stmts[0] != want {
		t.Fatalf("got %s, want %s", stmts[0], want)
	}
}

func TestSynthesizeUnsupportedList(t *testing.T) {
	arr := ast.MustNew("Expr_Array", ast.List{ast.MustNew("Expr_ArrayItem", ast.MustNew("Scalar_LNumber", "1"), nil)})
	_, stmts, err := Synthesize(arr, NewContext(nil, nil))
	if !errors.Is(err, ErrUnsupportedField) {
		t.Fatalf("expected ErrUnsupportedField, got %v", err)
	}
	if stmts != nil {
		t.Fatalf("expected no partial output, got %v", stmts)
	}
}

func TestSynthesizeGo(t *testing.T) {
	table := bindings.Table{"bar": ast.Path{Steps: []ast.Step{{Field: "args", Index: 0}, {Field: "value", Index: -1}}, Leaf: "name"}}
	ctx := NewContext(table, NewGoEmitter("node"))

	temp, stmts, err := Synthesize(fooCall(), ctx)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if temp != "funcCall" {
		t.Fatalf("temp = %q", temp)
	}
	want := []string{
		`name := ast.MustNew("Name", ast.Parts{"foo"})`,
		`variable := ast.MustNew("Expr_Variable", node.Child("args", 0).Child("value").Text("name"))`,
		`arg := ast.MustNew("Arg", variable)`,
		`variable1 := ast.MustNew("Expr_Variable", node.Child("args", 0).Child("value").Text("name"))`,
		`arg1 := ast.MustNew("Arg", variable1)`,
		`funcCall := ast.MustNew("Expr_FuncCall", name, ast.List{arg, arg1})`,
	}
	if diff := cmp.Diff(want, stmts); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestGoEmitterAvoidsKeywords(t *testing.T) {
	e := NewGoEmitter("node")
	for kind, want := range map[string]string{
		"Stmt_Return":   "returnNode",
		"Scalar_String": "stringNode",
		"Expr_New":      "newNode",
		"Expr_Assign":   "assign",
	} {
		if got := e.Base(kind); got != want {
			t.Fatalf("Base(%s) = %q, want %q", kind, got, want)
		}
	}
}

func TestTempsAreUnique(t *testing.T) {
	ctx := NewContext(nil, nil)
	seen := map[string]bool{}
	for _, base := range []string{"arg", "arg", "arg1", "arg", "variable", "arg1"} {
		name := ctx.Temp(base)
		if seen[name] {
			t.Fatalf("temporary %q allocated twice", name)
		}
		seen[name] = true
	}
	if got := ctx.Temp("name"); got != "name" {
		t.Fatalf("first use should get the bare name, got %q", got)
	}
}

func TestNewEmitter(t *testing.T) {
	if e, err := NewEmitter("GO", "n"); err != nil || e.Name() != "go" {
		t.Fatalf("NewEmitter(GO) = %v, %v", e, err)
	}
	if e, err := NewEmitter("", ""); err != nil || e.Name() != "php" {
		t.Fatalf("NewEmitter(\"\") = %v, %v", e, err)
	}
	if _, err := NewEmitter("rust", ""); err == nil {
		t.Fatal("expected error for unknown emitter")
	}
}
