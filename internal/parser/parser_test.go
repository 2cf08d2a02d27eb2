package parser

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func parseOne(t *testing.T, src string) string {
	t.Helper()
	stmts, err := Parse(context.Background(), src, DialectFragment)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if len(stmts) != 1 {
		t.Fatalf("Parse(%q) returned %d statements, want 1", src, len(stmts))
	}
	return stmts[0].String()
}

func TestParseLowersStatements(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{
			src:  "$a = 1;",
			want: `Stmt_Expression(expr=Expr_Assign(var=Expr_Variable(name="a"), expr=Scalar_LNumber(value="1")))`,
		},
		{
			src:  "foo($bar);",
			want: `Stmt_Expression(expr=Expr_FuncCall(name=Name(parts="foo"), args=[Arg(value=Expr_Variable(name="bar"))]))`,
		},
		{
			src:  "$x->y(1.5, 'z');",
			want: `Stmt_Expression(expr=Expr_MethodCall(var=Expr_Variable(name="x"), name=Identifier(name="y"), args=[Arg(value=Scalar_DNumber(value="1.5")), Arg(value=Scalar_String(value="z"))]))`,
		},
		{
			src:  `return \Foo\Bar::baz();`,
			want: `Stmt_Return(expr=Expr_StaticCall(class=Name_FullyQualified(parts="Foo\\Bar"), name=Identifier(name="baz"), args=[]))`,
		},
		{
			src:  "return;",
			want: `Stmt_Return(expr=nil)`,
		},
		{
			src:  "$a = $b + 2;",
			want: `Stmt_Expression(expr=Expr_Assign(var=Expr_Variable(name="a"), expr=Expr_BinaryOp_Plus(left=Expr_Variable(name="b"), right=Scalar_LNumber(value="2"))))`,
		},
		{
			src:  "$a .= 'x';",
			want: `Stmt_Expression(expr=Expr_AssignOp_Concat(var=Expr_Variable(name="a"), expr=Scalar_String(value="x")))`,
		},
		{
			src:  "$o = new Foo($a);",
			want: `Stmt_Expression(expr=Expr_Assign(var=Expr_Variable(name="o"), expr=Expr_New(class=Name(parts="Foo"), args=[Arg(value=Expr_Variable(name="a"))])))`,
		},
		{
			src:  "$v = $o->p;",
			want: `Stmt_Expression(expr=Expr_Assign(var=Expr_Variable(name="v"), expr=Expr_PropertyFetch(var=Expr_Variable(name="o"), name=Identifier(name="p"))))`,
		},
		{
			src:  "$v = !true;",
			want: `Stmt_Expression(expr=Expr_Assign(var=Expr_Variable(name="v"), expr=Expr_BooleanNot(expr=Expr_ConstFetch(name=Name(parts="true")))))`,
		},
		{
			src:  "$v = ['k' => 1, 2];",
			want: `Stmt_Expression(expr=Expr_Assign(var=Expr_Variable(name="v"), expr=Expr_Array(items=[Expr_ArrayItem(value=Scalar_LNumber(value="1"), key=Scalar_String(value="k")), Expr_ArrayItem(value=Scalar_LNumber(value="2"), key=nil)])))`,
		},
		{
			src:  "$i++;",
			want: `Stmt_Expression(expr=Expr_PostInc(var=Expr_Variable(name="i")))`,
		},
		{
			src:  "$v = ($a);",
			want: `Stmt_Expression(expr=Expr_Assign(var=Expr_Variable(name="v"), expr=Expr_Variable(name="a")))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := parseOne(t, tt.src); got != tt.want {
				t.Fatalf("Parse(%q)\n got: %s\nwant: %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseEchoFlattensExpressions(t *testing.T) {
	got := parseOne(t, "echo $a, $b;")
	want := `Stmt_Echo(exprs=[Expr_Variable(name="a"), Expr_Variable(name="b")])`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseFileDialect(t *testing.T) {
	stmts, err := Parse(context.Background(), "<?php\n$a = 1;\n$b = 2;\n", DialectFile)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"syntax error", "$a = ;", ""},
		{"unsupported statement", "function f() {}", "unsupported construct"},
		{"interpolation", `$a = "x $b";`, "interpolation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), tt.src, DialectFragment)
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Line != 1 {
				t.Fatalf("line = %d, want 1", pe.Line)
			}
			if tt.msg != "" && !strings.Contains(pe.Msg, tt.msg) {
				t.Fatalf("message %q does not mention %q", pe.Msg, tt.msg)
			}
		})
	}
}

func TestParseDialect(t *testing.T) {
	if d, err := ParseDialect("FILE"); err != nil || d != DialectFile {
		t.Fatalf("ParseDialect(FILE) = %v, %v", d, err)
	}
	if d, err := ParseDialect(""); err != nil || d != DialectFragment {
		t.Fatalf("ParseDialect(\"\") = %v, %v", d, err)
	}
	if _, err := ParseDialect("php5"); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}

func TestParseConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Parse(context.Background(), "foo($bar, $baz);", DialectFragment); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Parse: %v", err)
	}
}
