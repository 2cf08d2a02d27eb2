// Package synth emits construction code that rebuilds a syntax subtree,
// reading variables back from the original tree where it can.
package synth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/getlawrence/nodediff/internal/ast"
	"github.com/getlawrence/nodediff/internal/bindings"
)

// ErrUnsupportedField is returned for a field shape the synthesizer cannot
// express. Synthesis never drops such a field silently.
var ErrUnsupportedField = errors.New("unsupported field shape")

// Context is the state of one synthesis run. It must not be shared between
// runs.
type Context struct {
	Bindings bindings.Table
	Emitter  Emitter
	used     map[string]int
	taken    map[string]bool
}

// NewContext returns a fresh context. A nil emitter selects the PHP emitter.
func NewContext(table bindings.Table, emitter Emitter) *Context {
	if table == nil {
		table = bindings.Table{}
	}
	if emitter == nil {
		emitter = NewPHPEmitter("", DefaultNamespace)
	}
	return &Context{Bindings: table, Emitter: emitter, used: make(map[string]int), taken: make(map[string]bool)}
}

// Temp allocates a unique temporary from base: the bare name first, then
// base1, base2 and so on.
func (c *Context) Temp(base string) string {
	name := base
	for c.taken[name] {
		c.used[base]++
		name = base + strconv.Itoa(c.used[base])
	}
	c.taken[name] = true
	return name
}

// Synthesize emits statements rebuilding n bottom-up: every child's
// statements precede the statement of its parent. It returns the temporary
// holding n and the statements in order.
func Synthesize(n *ast.Node, ctx *Context) (string, []string, error) {
	if n == nil {
		return "", nil, fmt.Errorf("%w: nil node", ErrUnsupportedField)
	}
	spec, ok := ast.Schema(n.Kind)
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown node kind %s", ErrUnsupportedField, n.Kind)
	}
	e := ctx.Emitter

	var stmts []string
	params := make([]string, 0, len(n.Fields))
	for i, f := range n.Fields {
		role := spec[i].Role
		switch v := f.Value.(type) {
		case nil:
			params = append(params, e.Null())
		case ast.Leaf:
			if role != ast.RoleLeaf {
				return "", nil, unsupported(n, f, role)
			}
			if p, bound := ctx.Bindings.Lookup(string(v)); bound && n.Kind == ast.KindVariable {
				params = append(params, e.Reference(p))
			} else {
				params = append(params, e.Literal(string(v)))
			}
		case *ast.Node:
			if role != ast.RoleNode {
				return "", nil, unsupported(n, f, role)
			}
			temp, sub, err := Synthesize(v, ctx)
			if err != nil {
				return "", nil, err
			}
			stmts = append(stmts, sub...)
			params = append(params, temp)
		case ast.List:
			if role != ast.RoleArgs {
				return "", nil, unsupported(n, f, role)
			}
			temps := make([]string, 0, len(v))
			for _, el := range v {
				temp, sub, err := Synthesize(el, ctx)
				if err != nil {
					return "", nil, err
				}
				stmts = append(stmts, sub...)
				temps = append(temps, temp)
			}
			params = append(params, e.List(temps))
		case ast.Parts:
			if role != ast.RoleParts {
				return "", nil, unsupported(n, f, role)
			}
			params = append(params, e.Parts(v))
		default:
			return "", nil, unsupported(n, f, role)
		}
	}

	temp := e.Temp(ctx.Temp(e.Base(n.Kind)))
	stmts = append(stmts, e.Construct(temp, n.Kind, params))
	return temp, stmts, nil
}

func unsupported(n *ast.Node, f ast.Field, role ast.Role) error {
	return fmt.Errorf("%w: %s.%s (%s field holding %s)", ErrUnsupportedField, n.Kind, f.Name, role, ast.Describe(f.Value))
}
