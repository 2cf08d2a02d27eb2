// Package parser turns PHP source into ast trees. It parses with tree-sitter
// and lowers the concrete syntax tree into the kind-schema nodes of package ast.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getlawrence/nodediff/internal/ast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// ErrParse matches every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError reports malformed or unsupported input with a source position.
// Line and Column are 1-based and relative to the caller's source.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Dialect selects how source text is presented to the grammar.
type Dialect int

const (
	// DialectFragment treats the source as statements without an open tag.
	DialectFragment Dialect = iota
	// DialectFile treats the source as a complete file starting with <?php.
	DialectFile
)

const openTag = "<?php "

func (d Dialect) String() string {
	if d == DialectFile {
		return "file"
	}
	return "fragment"
}

// ParseDialect maps a configuration value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "", "fragment":
		return DialectFragment, nil
	case "file":
		return DialectFile, nil
	}
	return DialectFragment, fmt.Errorf("unknown dialect %q (valid: fragment, file)", s)
}

// Parse parses source as a sequence of top-level statements. Each call uses
// its own tree-sitter parser, so Parse is safe for concurrent use.
func Parse(ctx context.Context, source string, dialect Dialect) ([]*ast.Node, error) {
	content := []byte(source)
	if dialect == DialectFragment {
		content = []byte(openTag + source)
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(php.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer tree.Close()

	l := &lowerer{src: content, dialect: dialect}
	root := tree.RootNode()
	if root.HasError() {
		return nil, l.syntaxError(root)
	}
	return l.program(root)
}

type lowerer struct {
	src     []byte
	dialect Dialect
}

func (l *lowerer) errorf(n *sitter.Node, format string, args ...interface{}) error {
	pt := n.StartPoint()
	line, col := int(pt.Row)+1, int(pt.Column)+1
	if l.dialect == DialectFragment && pt.Row == 0 {
		col -= len(openTag)
		if col < 1 {
			col = 1
		}
	}
	return &ParseError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lowerer) syntaxError(root *sitter.Node) error {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	if bad.IsMissing() {
		return l.errorf(bad, "missing %s", bad.Type())
	}
	text := bad.Content(l.src)
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return l.errorf(bad, "syntax error near %q", text)
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !(c.HasError() || c.IsMissing()) {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

func (l *lowerer) text(n *sitter.Node) string {
	return n.Content(l.src)
}

// named returns the named children of n, skipping comments.
func named(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// operator returns the first anonymous token of n, which for operator
// expressions is the operator itself.
func operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && !c.IsNamed() {
			return c.Type()
		}
	}
	return ""
}

func (l *lowerer) program(root *sitter.Node) ([]*ast.Node, error) {
	var stmts []*ast.Node
	for _, c := range named(root) {
		switch c.Type() {
		case "php_tag", "text_interpolation", "empty_statement":
			continue
		}
		stmt, err := l.statement(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (l *lowerer) statement(n *sitter.Node) (*ast.Node, error) {
	switch n.Type() {
	case "expression_statement":
		kids := named(n)
		if len(kids) == 0 {
			return nil, l.errorf(n, "empty expression statement")
		}
		expr, err := l.expr(kids[0])
		if err != nil {
			return nil, err
		}
		return l.build(n, "Stmt_Expression", expr)
	case "return_statement":
		var expr *ast.Node
		if kids := named(n); len(kids) > 0 {
			var err error
			if expr, err = l.expr(kids[0]); err != nil {
				return nil, err
			}
		}
		return l.build(n, "Stmt_Return", expr)
	case "echo_statement":
		var exprs ast.List
		for _, c := range named(n) {
			lowered, err := l.sequence(c)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, lowered...)
		}
		return l.build(n, "Stmt_Echo", exprs)
	}
	return nil, l.errorf(n, "unsupported construct %q", n.Type())
}

// sequence flattens the nested sequence_expression used by echo.
func (l *lowerer) sequence(n *sitter.Node) (ast.List, error) {
	if n.Type() != "sequence_expression" {
		expr, err := l.expr(n)
		if err != nil {
			return nil, err
		}
		return ast.List{expr}, nil
	}
	var out ast.List
	for _, c := range named(n) {
		lowered, err := l.sequence(c)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

func (l *lowerer) build(n *sitter.Node, kind string, values ...ast.Value) (*ast.Node, error) {
	node, err := ast.New(kind, values...)
	if err != nil {
		return nil, l.errorf(n, "%v", err)
	}
	return node, nil
}
