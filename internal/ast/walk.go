package ast

// Inspect traverses the tree rooted at n in pre-order: the node first, then
// its fields in declared order, list elements by index. If fn returns false
// the children of that node are skipped.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, f := range n.Fields {
		switch v := f.Value.(type) {
		case *Node:
			Inspect(v, fn)
		case List:
			for _, el := range v {
				Inspect(el, fn)
			}
		}
	}
}

// Parents is a non-owning index from a node to the node that holds it.
// Trees never store back-references themselves.
type Parents map[*Node]*Node

// LinkParents indexes every node below root by its parent. The root itself
// has no entry.
func LinkParents(root *Node) Parents {
	parents := make(Parents)
	var link func(*Node)
	link = func(n *Node) {
		for _, f := range n.Fields {
			switch v := f.Value.(type) {
			case *Node:
				if v != nil {
					parents[v] = n
					link(v)
				}
			case List:
				for _, el := range v {
					if el != nil {
						parents[el] = n
						link(el)
					}
				}
			}
		}
	}
	if root != nil {
		link(root)
	}
	return parents
}

// Parent returns the node holding n, or nil for a root.
func (p Parents) Parent(n *Node) *Node {
	return p[n]
}
