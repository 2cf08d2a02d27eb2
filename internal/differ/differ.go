// Package differ finds the first point where two syntax trees disagree.
package differ

import (
	"errors"
	"fmt"

	"github.com/getlawrence/nodediff/internal/ast"
)

// ErrShapeMismatch is returned when two values at the same position cannot
// be compared, e.g. a leaf against a node. It signals malformed input rather
// than a difference.
var ErrShapeMismatch = errors.New("shape mismatch")

// Divergence is the first pair of values where two trees disagree, in
// pre-order, field order, index order.
type Divergence struct {
	Original ast.Value
	Expected ast.Value
	// OriginalOwner and ExpectedOwner are the nearest nodes enclosing the
	// pair. They are nil when the pair sits at the top level or when the
	// pair itself is two nodes of different kinds at the top level.
	OriginalOwner *ast.Node
	ExpectedOwner *ast.Node
	// Field is the field of the owners holding the pair.
	Field string
}

func (d *Divergence) String() string {
	if d == nil {
		return "no divergence"
	}
	where := "top level"
	if d.OriginalOwner != nil {
		where = d.OriginalOwner.Kind + "." + d.Field
	}
	return fmt.Sprintf("%s: %s -> %s", where, ast.Describe(d.Original), ast.Describe(d.Expected))
}

// Diff compares a and b and returns their first divergence, or nil when they
// are structurally identical. Values are ast.Leaf, ast.Parts, *ast.Node,
// ast.List or nil; a top-level statement list may be passed as []*ast.Node.
func Diff(a, b ast.Value) (*Divergence, error) {
	return diff(normalize(a), normalize(b), nil, nil, "")
}

func normalize(v ast.Value) ast.Value {
	switch x := v.(type) {
	case []*ast.Node:
		return ast.List(x)
	case []string:
		return ast.Parts(x)
	case string:
		return ast.Leaf(x)
	case *ast.Node:
		if x == nil {
			return nil
		}
	}
	return v
}

func diff(a, b ast.Value, ownerA, ownerB *ast.Node, field string) (*Divergence, error) {
	found := func() (*Divergence, error) {
		return &Divergence{Original: a, Expected: b, OriginalOwner: ownerA, ExpectedOwner: ownerB, Field: field}, nil
	}
	if a == nil || b == nil {
		if a == nil && b == nil {
			return nil, nil
		}
		return found()
	}

	switch x := a.(type) {
	case ast.List:
		y, ok := b.(ast.List)
		if !ok {
			return nil, mismatch(a, b, ownerA, field)
		}
		for i := 0; i < len(x) && i < len(y); i++ {
			d, err := diff(normalize(x[i]), normalize(y[i]), ownerA, ownerB, field)
			if err != nil || d != nil {
				return d, err
			}
		}
		if len(x) != len(y) {
			return found()
		}
		return nil, nil

	case ast.Leaf:
		y, ok := b.(ast.Leaf)
		if !ok {
			return nil, mismatch(a, b, ownerA, field)
		}
		if x != y {
			return found()
		}
		return nil, nil

	case ast.Parts:
		y, ok := b.(ast.Parts)
		if !ok {
			return nil, mismatch(a, b, ownerA, field)
		}
		if len(x) != len(y) {
			return found()
		}
		for i := range x {
			if x[i] != y[i] {
				return found()
			}
		}
		return nil, nil
	}

	x, ok := a.(*ast.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a node", ErrShapeMismatch, a)
	}
	y, ok := b.(*ast.Node)
	if !ok {
		return nil, mismatch(a, b, ownerA, field)
	}
	if x.Kind != y.Kind {
		return found()
	}
	if len(x.Fields) != len(y.Fields) {
		return nil, fmt.Errorf("%w: %s has %d fields on one side and %d on the other", ErrShapeMismatch, x.Kind, len(x.Fields), len(y.Fields))
	}
	for i, f := range x.Fields {
		g := y.Fields[i]
		if f.Name != g.Name {
			return nil, fmt.Errorf("%w: %s field %d is %q on one side and %q on the other", ErrShapeMismatch, x.Kind, i, f.Name, g.Name)
		}
		d, err := diff(normalize(f.Value), normalize(g.Value), x, y, f.Name)
		if err != nil || d != nil {
			return d, err
		}
	}
	return nil, nil
}

func mismatch(a, b ast.Value, owner *ast.Node, field string) error {
	where := "top level"
	if owner != nil {
		where = owner.Kind + "." + field
	}
	return fmt.Errorf("%w at %s: %s against %s", ErrShapeMismatch, where, ast.Describe(a), ast.Describe(b))
}
