package parser

import (
	"strings"

	"github.com/getlawrence/nodediff/internal/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

func (l *lowerer) expr(n *sitter.Node) (*ast.Node, error) {
	switch n.Type() {
	case "variable_name":
		return l.variable(n)
	case "parenthesized_expression":
		kids := named(n)
		if len(kids) != 1 {
			return nil, l.errorf(n, "malformed parenthesized expression")
		}
		return l.expr(kids[0])
	case "integer":
		return l.build(n, "Scalar_LNumber", normalizeInt(l.text(n)))
	case "float":
		return l.build(n, "Scalar_DNumber", l.text(n))
	case "string", "encapsed_string":
		return l.str(n)
	case "boolean", "null":
		name, err := l.build(n, ast.KindName, ast.Parts{l.text(n)})
		if err != nil {
			return nil, err
		}
		return l.build(n, "Expr_ConstFetch", name)
	case "name", "qualified_name":
		name, err := l.name(n)
		if err != nil {
			return nil, err
		}
		return l.build(n, "Expr_ConstFetch", name)
	case "assignment_expression":
		return l.pair(n, "Expr_Assign", "left", "right")
	case "augmented_assignment_expression":
		op := operator(n)
		suffix, ok := ast.AssignOps[op]
		if !ok {
			return nil, l.errorf(n, "unsupported assignment operator %q", op)
		}
		return l.pair(n, "Expr_AssignOp_"+suffix, "left", "right")
	case "binary_expression":
		op := strings.ToLower(operator(n))
		suffix, ok := ast.BinaryOps[op]
		if !ok {
			return nil, l.errorf(n, "unsupported binary operator %q", op)
		}
		return l.pair(n, "Expr_BinaryOp_"+suffix, "left", "right")
	case "unary_op_expression":
		return l.unary(n)
	case "update_expression":
		return l.update(n)
	case "conditional_expression":
		return l.ternary(n)
	case "function_call_expression":
		return l.call(n)
	case "member_call_expression":
		return l.memberCall(n, "Expr_MethodCall")
	case "nullsafe_member_call_expression":
		return l.memberCall(n, "Expr_NullsafeMethodCall")
	case "scoped_call_expression":
		return l.staticCall(n)
	case "member_access_expression":
		return l.fetch(n, "Expr_PropertyFetch")
	case "nullsafe_member_access_expression":
		return l.fetch(n, "Expr_NullsafePropertyFetch")
	case "class_constant_access_expression":
		return l.classConst(n)
	case "object_creation_expression":
		return l.newExpr(n)
	case "array_creation_expression":
		return l.array(n)
	}
	return nil, l.errorf(n, "unsupported construct %q", n.Type())
}

func (l *lowerer) variable(n *sitter.Node) (*ast.Node, error) {
	for _, c := range named(n) {
		if c.Type() == "name" {
			return l.build(n, ast.KindVariable, l.text(c))
		}
	}
	return nil, l.errorf(n, "unsupported variable %q", l.text(n))
}

func (l *lowerer) str(n *sitter.Node) (*ast.Node, error) {
	for _, c := range named(n) {
		switch c.Type() {
		case "string_value", "string_content", "escape_sequence":
		default:
			return nil, l.errorf(c, "unsupported string interpolation %q", l.text(c))
		}
	}
	value, ok := unquote(l.text(n))
	if !ok {
		return nil, l.errorf(n, "malformed string %q", l.text(n))
	}
	return l.build(n, "Scalar_String", value)
}

// name lowers a (possibly qualified) class or function name.
func (l *lowerer) name(n *sitter.Node) (*ast.Node, error) {
	text := l.text(n)
	kind := ast.KindName
	if strings.HasPrefix(text, `\`) {
		kind = ast.KindFullyQualified
		text = text[1:]
	}
	return l.build(n, kind, ast.Parts(strings.Split(text, `\`)))
}

// classRef lowers the class position of new, static calls and constant
// fetches: a name when written literally, an expression otherwise.
func (l *lowerer) classRef(n *sitter.Node) (*ast.Node, error) {
	switch n.Type() {
	case "name", "qualified_name":
		return l.name(n)
	case "relative_scope":
		return l.build(n, ast.KindName, ast.Parts{l.text(n)})
	}
	return l.expr(n)
}

// identifier lowers the member position of calls and fetches.
func (l *lowerer) identifier(n *sitter.Node) (*ast.Node, error) {
	if n.Type() == "name" {
		return l.build(n, ast.KindIdentifier, l.text(n))
	}
	return l.expr(n)
}

func (l *lowerer) field(n *sitter.Node, name string) (*sitter.Node, error) {
	c := n.ChildByFieldName(name)
	if c == nil {
		return nil, l.errorf(n, "%s is missing %s", n.Type(), name)
	}
	return c, nil
}

func (l *lowerer) pair(n *sitter.Node, kind, left, right string) (*ast.Node, error) {
	ln, err := l.field(n, left)
	if err != nil {
		return nil, err
	}
	rn, err := l.field(n, right)
	if err != nil {
		return nil, err
	}
	a, err := l.expr(ln)
	if err != nil {
		return nil, err
	}
	b, err := l.expr(rn)
	if err != nil {
		return nil, err
	}
	return l.build(n, kind, a, b)
}

func (l *lowerer) unary(n *sitter.Node) (*ast.Node, error) {
	kids := named(n)
	if len(kids) != 1 {
		return nil, l.errorf(n, "malformed unary expression")
	}
	var kind string
	switch op := operator(n); op {
	case "!":
		kind = "Expr_BooleanNot"
	case "-":
		kind = "Expr_UnaryMinus"
	case "+":
		kind = "Expr_UnaryPlus"
	case "~":
		kind = "Expr_BitwiseNot"
	default:
		return nil, l.errorf(n, "unsupported unary operator %q", op)
	}
	operand, err := l.expr(kids[0])
	if err != nil {
		return nil, err
	}
	return l.build(n, kind, operand)
}

func (l *lowerer) update(n *sitter.Node) (*ast.Node, error) {
	kids := named(n)
	if len(kids) != 1 || n.ChildCount() != 2 {
		return nil, l.errorf(n, "malformed update expression")
	}
	post := n.Child(0).IsNamed()
	var kind string
	switch op := operator(n); {
	case op == "++" && post:
		kind = "Expr_PostInc"
	case op == "--" && post:
		kind = "Expr_PostDec"
	case op == "++":
		kind = "Expr_PreInc"
	case op == "--":
		kind = "Expr_PreDec"
	default:
		return nil, l.errorf(n, "unsupported update operator %q", op)
	}
	v, err := l.expr(kids[0])
	if err != nil {
		return nil, err
	}
	return l.build(n, kind, v)
}

func (l *lowerer) ternary(n *sitter.Node) (*ast.Node, error) {
	cn, err := l.field(n, "condition")
	if err != nil {
		return nil, err
	}
	en, err := l.field(n, "alternative")
	if err != nil {
		return nil, err
	}
	cond, err := l.expr(cn)
	if err != nil {
		return nil, err
	}
	var then *ast.Node
	if bn := n.ChildByFieldName("body"); bn != nil {
		if then, err = l.expr(bn); err != nil {
			return nil, err
		}
	}
	alt, err := l.expr(en)
	if err != nil {
		return nil, err
	}
	return l.build(n, "Expr_Ternary", cond, then, alt)
}

func (l *lowerer) arguments(n *sitter.Node) (ast.List, error) {
	if n == nil {
		return ast.List{}, nil
	}
	args := ast.List{}
	for _, c := range named(n) {
		if c.Type() != "argument" {
			return nil, l.errorf(c, "unsupported argument %q", l.text(c))
		}
		if c.ChildByFieldName("name") != nil {
			return nil, l.errorf(c, "unsupported named argument %q", l.text(c))
		}
		kids := named(c)
		if len(kids) != 1 {
			return nil, l.errorf(c, "unsupported argument %q", l.text(c))
		}
		value, err := l.expr(kids[0])
		if err != nil {
			return nil, err
		}
		arg, err := l.build(c, ast.KindArg, value)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (l *lowerer) call(n *sitter.Node) (*ast.Node, error) {
	fn, err := l.field(n, "function")
	if err != nil {
		return nil, err
	}
	name, err := l.classRef(fn)
	if err != nil {
		return nil, err
	}
	args, err := l.arguments(n.ChildByFieldName("arguments"))
	if err != nil {
		return nil, err
	}
	return l.build(n, "Expr_FuncCall", name, args)
}

func (l *lowerer) memberCall(n *sitter.Node, kind string) (*ast.Node, error) {
	on, err := l.field(n, "object")
	if err != nil {
		return nil, err
	}
	nn, err := l.field(n, "name")
	if err != nil {
		return nil, err
	}
	object, err := l.expr(on)
	if err != nil {
		return nil, err
	}
	name, err := l.identifier(nn)
	if err != nil {
		return nil, err
	}
	args, err := l.arguments(n.ChildByFieldName("arguments"))
	if err != nil {
		return nil, err
	}
	return l.build(n, kind, object, name, args)
}

func (l *lowerer) staticCall(n *sitter.Node) (*ast.Node, error) {
	sn, err := l.field(n, "scope")
	if err != nil {
		return nil, err
	}
	nn, err := l.field(n, "name")
	if err != nil {
		return nil, err
	}
	class, err := l.classRef(sn)
	if err != nil {
		return nil, err
	}
	name, err := l.identifier(nn)
	if err != nil {
		return nil, err
	}
	args, err := l.arguments(n.ChildByFieldName("arguments"))
	if err != nil {
		return nil, err
	}
	return l.build(n, "Expr_StaticCall", class, name, args)
}

func (l *lowerer) fetch(n *sitter.Node, kind string) (*ast.Node, error) {
	on, err := l.field(n, "object")
	if err != nil {
		return nil, err
	}
	nn, err := l.field(n, "name")
	if err != nil {
		return nil, err
	}
	object, err := l.expr(on)
	if err != nil {
		return nil, err
	}
	name, err := l.identifier(nn)
	if err != nil {
		return nil, err
	}
	return l.build(n, kind, object, name)
}

func (l *lowerer) classConst(n *sitter.Node) (*ast.Node, error) {
	kids := named(n)
	if len(kids) == 0 {
		return nil, l.errorf(n, "malformed class constant access")
	}
	class, err := l.classRef(kids[0])
	if err != nil {
		return nil, err
	}
	var name *ast.Node
	if len(kids) > 1 {
		name, err = l.identifier(kids[1])
	} else if strings.HasSuffix(l.text(n), "::class") {
		name, err = l.build(n, ast.KindIdentifier, "class")
	} else {
		return nil, l.errorf(n, "malformed class constant access")
	}
	if err != nil {
		return nil, err
	}
	return l.build(n, "Expr_ClassConstFetch", class, name)
}

func (l *lowerer) newExpr(n *sitter.Node) (*ast.Node, error) {
	kids := named(n)
	if len(kids) == 0 {
		return nil, l.errorf(n, "malformed new expression")
	}
	if kids[0].Type() == "anonymous_class" {
		return nil, l.errorf(n, "unsupported construct %q", "anonymous_class")
	}
	class, err := l.classRef(kids[0])
	if err != nil {
		return nil, err
	}
	var argNode *sitter.Node
	if len(kids) > 1 && kids[1].Type() == "arguments" {
		argNode = kids[1]
	}
	args, err := l.arguments(argNode)
	if err != nil {
		return nil, err
	}
	return l.build(n, "Expr_New", class, args)
}

func (l *lowerer) array(n *sitter.Node) (*ast.Node, error) {
	items := ast.List{}
	for _, c := range named(n) {
		if c.Type() != "array_element_initializer" {
			return nil, l.errorf(c, "unsupported array element %q", l.text(c))
		}
		var parts []*sitter.Node
		for _, k := range named(c) {
			if k.Type() == "by_ref" || k.Type() == "variadic_unpacking" {
				return nil, l.errorf(k, "unsupported array element %q", l.text(c))
			}
			parts = append(parts, k)
		}
		var key, value *ast.Node
		var err error
		switch len(parts) {
		case 1:
			value, err = l.expr(parts[0])
		case 2:
			if key, err = l.expr(parts[0]); err == nil {
				value, err = l.expr(parts[1])
			}
		default:
			return nil, l.errorf(c, "malformed array element")
		}
		if err != nil {
			return nil, err
		}
		item, err := l.build(c, "Expr_ArrayItem", value, key)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return l.build(n, "Expr_Array", items)
}
