package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/getlawrence/nodediff/internal/ast"
	"github.com/getlawrence/nodediff/internal/bindings"
	"github.com/getlawrence/nodediff/internal/differ"
	"github.com/getlawrence/nodediff/internal/logger"
	"github.com/getlawrence/nodediff/internal/parser"
	"github.com/getlawrence/nodediff/internal/synth"
)

// Result is the outcome of one diff-and-synthesize run
type Result struct {
	// Hook is the kind of the original node a rewrite rule would hook on.
	Hook       string            `json:"hook,omitempty" yaml:"hook,omitempty"`
	Divergence string            `json:"divergence,omitempty" yaml:"divergence,omitempty"`
	Bindings   map[string]string `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Statements []string          `json:"statements" yaml:"statements"`
	// Root is the temporary holding the rebuilt node.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
}

// Empty reports whether the inputs were structurally identical
func (r *Result) Empty() bool {
	return r == nil || r.Divergence == ""
}

// Code returns the statements as one block of source text
func (r *Result) Code() string {
	if r == nil || len(r.Statements) == 0 {
		return ""
	}
	return strings.Join(r.Statements, "\n") + "\n"
}

// Generator diffs two snippets and synthesizes construction code for the
// expected side
type Generator struct {
	dialect parser.Dialect
	emitter synth.Emitter
	logger  logger.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithDialect sets how sources are presented to the parser
func WithDialect(d parser.Dialect) Option {
	return func(g *Generator) { g.dialect = d }
}

// WithEmitter sets the output language of synthesized code
func WithEmitter(e synth.Emitter) Option {
	return func(g *Generator) { g.emitter = e }
}

// WithLogger sets the logger used for progress messages
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a generator. By default it parses fragments and
// emits PHP-Parser code.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		dialect: parser.DialectFragment,
		emitter: synth.NewPHPEmitter("node", synth.DefaultNamespace),
		logger:  logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Emitter returns the emitter the generator synthesizes with
func (g *Generator) Emitter() synth.Emitter {
	return g.emitter
}

// GetDiffCode returns the construction statements rebuilding the first
// divergent subtree of expected, or an empty slice when the inputs are
// structurally identical.
func (g *Generator) GetDiffCode(ctx context.Context, original, expected string) ([]string, error) {
	res, err := g.Generate(ctx, original, expected)
	if err != nil {
		return nil, err
	}
	return res.Statements, nil
}

// Generate runs the full pipeline and returns the synthesized code together
// with what was found along the way.
func (g *Generator) Generate(ctx context.Context, original, expected string) (*Result, error) {
	from, err := parser.Parse(ctx, original, g.dialect)
	if err != nil {
		return nil, fmt.Errorf("original code: %w", err)
	}
	to, err := parser.Parse(ctx, expected, g.dialect)
	if err != nil {
		return nil, fmt.Errorf("expected code: %w", err)
	}

	d, err := differ.Diff(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}
	if d == nil {
		g.logger.Log("No structural difference found")
		return &Result{Statements: []string{}}, nil
	}

	origin := enclosing(d.Original, d.OriginalOwner)
	target := enclosing(d.Expected, d.ExpectedOwner)
	res := &Result{Divergence: d.String(), Statements: []string{}}
	if origin != nil {
		res.Hook = origin.Kind
		g.logger.Logf("Hook: %s\n", origin.Kind)
	}

	table, err := bindings.Collect(origin)
	if err != nil {
		return nil, fmt.Errorf("failed to collect variables: %w", err)
	}
	if len(table) > 0 {
		res.Bindings = make(map[string]string, len(table))
		for name, p := range table {
			res.Bindings[name] = p.String()
		}
	}

	sctx := synth.NewContext(table, g.emitter)
	for _, n := range targets(d, target) {
		temp, stmts, err := synth.Synthesize(n, sctx)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize %s: %w", n.Kind, err)
		}
		res.Statements = append(res.Statements, stmts...)
		res.Root = temp
	}
	return res, nil
}

// enclosing returns v when it is a node, otherwise the node owning it.
func enclosing(v ast.Value, owner *ast.Node) *ast.Node {
	if n, ok := v.(*ast.Node); ok && n != nil {
		return n
	}
	return owner
}

// targets lists the expected nodes to synthesize. Without an enclosing node
// the divergence is between top-level statement lists, and every statement
// the expected side adds is rebuilt in order.
func targets(d *differ.Divergence, target *ast.Node) []*ast.Node {
	if target != nil {
		return []*ast.Node{target}
	}
	from, _ := d.Original.(ast.List)
	to, _ := d.Expected.(ast.List)
	if len(to) <= len(from) {
		return nil
	}
	return to[len(from):]
}
