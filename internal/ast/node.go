package ast

import (
	"fmt"
	"strings"
)

// Value is the content of a node field: Leaf, *Node, List, Parts or nil.
type Value interface{}

// Leaf is a string-valued field.
type Leaf string

// List is an ordered sequence of child nodes.
type List []*Node

// Parts holds the string components of a qualified name.
type Parts []string

// Field is a named slot of a node.
type Field struct {
	Name  string
	Value Value
}

// Node is one element of a syntax tree. Its fields always follow the
// schema registered for its Kind.
type Node struct {
	Kind   string
	Fields []Field
}

// New creates a node of the given kind, assigning values to the kind's
// fields in declared order.
func New(kind string, values ...Value) (*Node, error) {
	spec, ok := Schema(kind)
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
	if len(values) != len(spec) {
		return nil, fmt.Errorf("node kind %s takes %d fields, got %d", kind, len(spec), len(values))
	}
	n := &Node{Kind: kind, Fields: make([]Field, len(spec))}
	for i, fs := range spec {
		v, err := normalize(values[i], fs.Role)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", kind, fs.Name, err)
		}
		n.Fields[i] = Field{Name: fs.Name, Value: v}
	}
	return n, nil
}

// MustNew is like New but panics on error. It is meant for generated code
// and tests where the kind and arity are known statically.
func MustNew(kind string, values ...Value) *Node {
	n, err := New(kind, values...)
	if err != nil {
		panic(err)
	}
	return n
}

func normalize(v Value, role Role) (Value, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		v = Leaf(x)
	case []*Node:
		v = List(x)
	case []string:
		v = Parts(x)
	case *Node:
		if x == nil {
			return nil, nil
		}
	}
	ok := false
	switch v.(type) {
	case Leaf:
		ok = role == RoleLeaf
	case *Node:
		ok = role == RoleNode
	case List:
		ok = role == RoleArgs || role == RoleList
	case Parts:
		ok = role == RoleParts
	}
	if !ok {
		return nil, fmt.Errorf("value of type %T does not fit a %s field", v, role)
	}
	return v, nil
}

// Get returns the value of the named field and whether the field exists.
func (n *Node) Get(name string) (Value, bool) {
	if n == nil {
		return nil, false
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Child returns the node held by the named field. With an index, the field
// must be a List and the element at that index is returned. Missing fields
// and out-of-range indexes yield nil so calls can be chained.
func (n *Node) Child(name string, index ...int) *Node {
	v, ok := n.Get(name)
	if !ok {
		return nil
	}
	if len(index) == 0 {
		child, _ := v.(*Node)
		return child
	}
	list, _ := v.(List)
	if index[0] < 0 || index[0] >= len(list) {
		return nil
	}
	return list[index[0]]
}

// Text returns the leaf held by the named field, or "" if there is none.
func (n *Node) Text(name string) string {
	v, _ := n.Get(name)
	switch x := v.(type) {
	case Leaf:
		return string(x)
	case Parts:
		return strings.Join(x, `\`)
	}
	return ""
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	b.WriteString(n.Kind)
	b.WriteByte('(')
	for i, f := range n.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		writeValue(b, f.Value)
	}
	b.WriteByte(')')
}

func writeValue(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
	case Leaf:
		fmt.Fprintf(b, "%q", string(x))
	case Parts:
		fmt.Fprintf(b, "%q", strings.Join(x, `\`))
	case *Node:
		writeNode(b, x)
	case List:
		b.WriteByte('[')
		for i, el := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, el)
		}
		b.WriteByte(']')
	default:
		fmt.Fprintf(b, "%v", x)
	}
}

// Describe returns a short human-readable label for a field value.
func Describe(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case Leaf:
		return fmt.Sprintf("%q", string(x))
	case Parts:
		return fmt.Sprintf("%q", strings.Join(x, `\`))
	case *Node:
		if x == nil {
			return "nil"
		}
		return x.Kind
	case List:
		return fmt.Sprintf("list(%d)", len(x))
	}
	return fmt.Sprintf("%T", v)
}
