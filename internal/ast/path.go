package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDetachedNode is returned when a node cannot be reached from the root
// a path is resolved against.
var ErrDetachedNode = errors.New("node is not attached to root")

// Step descends one level: into a single-child field when Index is -1,
// otherwise into the element at Index of a list field.
type Step struct {
	Field string
	Index int
}

func (s Step) String() string {
	if s.Index < 0 {
		return s.Field
	}
	return s.Field + "[" + strconv.Itoa(s.Index) + "]"
}

// Path locates a descendant from a fixed root. Leaf names the terminal
// field holding the value itself; it is empty when the path stops at a node.
// Paths computed from different roots are not comparable.
type Path struct {
	Steps []Step
	Leaf  string
}

func (p Path) String() string {
	elems := make([]string, 0, len(p.Steps)+1)
	for _, s := range p.Steps {
		elems = append(elems, s.String())
	}
	if p.Leaf != "" {
		elems = append(elems, p.Leaf)
	}
	return strings.Join(elems, ".")
}

// Follow walks the steps of p from root and returns the node reached.
func (p Path) Follow(root *Node) (*Node, error) {
	cur := root
	for i, s := range p.Steps {
		v, ok := cur.Get(s.Field)
		if !ok {
			return nil, fmt.Errorf("step %d: %s has no field %q", i, kindOf(cur), s.Field)
		}
		var next *Node
		if s.Index < 0 {
			next, _ = v.(*Node)
		} else if l, ok := v.(List); ok && s.Index < len(l) {
			next = l[s.Index]
		}
		if next == nil {
			return nil, fmt.Errorf("step %d: %s does not lead to a node", i, s)
		}
		cur = next
	}
	return cur, nil
}

// Value follows p and returns the terminal leaf value.
func (p Path) Value(root *Node) (string, error) {
	n, err := p.Follow(root)
	if err != nil {
		return "", err
	}
	if p.Leaf == "" {
		return "", fmt.Errorf("path %s has no terminal field", p)
	}
	v, ok := n.Get(p.Leaf)
	if !ok {
		return "", fmt.Errorf("%s has no field %q", n.Kind, p.Leaf)
	}
	l, ok := v.(Leaf)
	if !ok {
		return "", fmt.Errorf("%s.%s is not a leaf", n.Kind, p.Leaf)
	}
	return string(l), nil
}

// Resolve computes the path from root down to target by following parent
// links upward. The terminal accessor is the first leaf field of target's
// kind, if it has one.
func Resolve(parents Parents, root, target *Node) (Path, error) {
	chain := []*Node{target}
	for cur := target; cur != root; {
		cur = parents.Parent(cur)
		if cur == nil {
			return Path{}, fmt.Errorf("%w: %s", ErrDetachedNode, kindOf(target))
		}
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var path Path
	for i := 0; i+1 < len(chain); i++ {
		step, ok := stepTo(chain[i], chain[i+1])
		if !ok {
			return Path{}, fmt.Errorf("%w: %s is not a child of %s", ErrDetachedNode, chain[i+1].Kind, chain[i].Kind)
		}
		path.Steps = append(path.Steps, step)
	}
	spec, _ := Schema(target.Kind)
	for _, fs := range spec {
		if fs.Role == RoleLeaf {
			path.Leaf = fs.Name
			break
		}
	}
	return path, nil
}

func stepTo(parent, child *Node) (Step, bool) {
	for _, f := range parent.Fields {
		switch v := f.Value.(type) {
		case *Node:
			if v == child {
				return Step{Field: f.Name, Index: -1}, true
			}
		case List:
			for i, el := range v {
				if el == child {
					return Step{Field: f.Name, Index: i}, true
				}
			}
		}
	}
	return Step{}, false
}

func kindOf(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Kind
}
