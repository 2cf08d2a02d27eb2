// Package bindings indexes the variables referenced in a subtree by the
// structural path of their occurrence.
package bindings

import (
	"sort"

	"github.com/getlawrence/nodediff/internal/ast"
)

// Table maps a variable name to the path of its occurrence, relative to the
// root it was collected from.
type Table map[string]ast.Path

// Lookup returns the path bound to name.
func (t Table) Lookup(name string) (ast.Path, bool) {
	p, ok := t[name]
	return p, ok
}

// Names returns the bound names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collect walks root in pre-order and binds every variable reference with a
// literal name to its path. When a name occurs more than once the last
// occurrence in document order wins.
func Collect(root *ast.Node) (Table, error) {
	table := make(Table)
	if root == nil {
		return table, nil
	}
	parents := ast.LinkParents(root)

	var found []*ast.Node
	ast.Inspect(root, func(n *ast.Node) bool {
		if n.Kind == ast.KindVariable {
			found = append(found, n)
		}
		return true
	})

	for _, n := range found {
		v, _ := n.Get("name")
		name, ok := v.(ast.Leaf)
		if !ok {
			continue
		}
		p, err := ast.Resolve(parents, root, n)
		if err != nil {
			return nil, err
		}
		table[string(name)] = p
	}
	return table, nil
}
