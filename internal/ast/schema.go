package ast

import (
	"sort"
	"strings"
)

// Role is the semantic role of a field within its node kind.
type Role int

const (
	// RoleLeaf holds a plain string value.
	RoleLeaf Role = iota
	// RoleNode holds a single child node, possibly absent.
	RoleNode
	// RoleArgs holds an argument list.
	RoleArgs
	// RoleParts holds the components of a qualified name.
	RoleParts
	// RoleList holds any other ordered sequence of nodes.
	RoleList
)

func (r Role) String() string {
	switch r {
	case RoleLeaf:
		return "leaf"
	case RoleNode:
		return "node"
	case RoleArgs:
		return "args"
	case RoleParts:
		return "parts"
	case RoleList:
		return "list"
	}
	return "unknown"
}

// FieldSpec declares one field of a node kind.
type FieldSpec struct {
	Name string
	Role Role
}

func leaf(name string) FieldSpec  { return FieldSpec{Name: name, Role: RoleLeaf} }
func node(name string) FieldSpec  { return FieldSpec{Name: name, Role: RoleNode} }
func args(name string) FieldSpec  { return FieldSpec{Name: name, Role: RoleArgs} }
func parts(name string) FieldSpec { return FieldSpec{Name: name, Role: RoleParts} }
func list(name string) FieldSpec  { return FieldSpec{Name: name, Role: RoleList} }

// Node kinds shared by the parser and the synthesizer.
const (
	KindVariable       = "Expr_Variable"
	KindArg            = "Arg"
	KindName           = "Name"
	KindFullyQualified = "Name_FullyQualified"
	KindIdentifier     = "Identifier"
)

// BinaryOps maps PHP binary operators to their kind suffix.
var BinaryOps = map[string]string{
	"+":   "Plus",
	"-":   "Minus",
	"*":   "Mul",
	"/":   "Div",
	"%":   "Mod",
	"**":  "Pow",
	".":   "Concat",
	"==":  "Equal",
	"!=":  "NotEqual",
	"<>":  "NotEqual",
	"===": "Identical",
	"!==": "NotIdentical",
	"<":   "Smaller",
	"<=":  "SmallerOrEqual",
	">":   "Greater",
	">=":  "GreaterOrEqual",
	"&&":  "BooleanAnd",
	"||":  "BooleanOr",
	"and": "LogicalAnd",
	"or":  "LogicalOr",
	"xor": "LogicalXor",
	"??":  "Coalesce",
	"<=>": "Spaceship",
	"&":   "BitwiseAnd",
	"|":   "BitwiseOr",
	"^":   "BitwiseXor",
	"<<":  "ShiftLeft",
	">>":  "ShiftRight",
}

// AssignOps maps PHP compound assignment operators to their kind suffix.
var AssignOps = map[string]string{
	"+=":  "Plus",
	"-=":  "Minus",
	"*=":  "Mul",
	"/=":  "Div",
	"%=":  "Mod",
	"**=": "Pow",
	".=":  "Concat",
	"??=": "Coalesce",
	"&=":  "BitwiseAnd",
	"|=":  "BitwiseOr",
	"^=":  "BitwiseXor",
	"<<=": "ShiftLeft",
	">>=": "ShiftRight",
}

var schemas = map[string][]FieldSpec{
	"Stmt_Expression": {node("expr")},
	"Stmt_Return":     {node("expr")},
	"Stmt_Echo":       {list("exprs")},

	KindVariable:      {leaf("name")},
	"Expr_Assign":     {node("var"), node("expr")},
	"Expr_ConstFetch": {node("name")},

	"Expr_BooleanNot": {node("expr")},
	"Expr_UnaryMinus": {node("expr")},
	"Expr_UnaryPlus":  {node("expr")},
	"Expr_BitwiseNot": {node("expr")},
	"Expr_PreInc":     {node("var")},
	"Expr_PreDec":     {node("var")},
	"Expr_PostInc":    {node("var")},
	"Expr_PostDec":    {node("var")},
	"Expr_Ternary":    {node("cond"), node("if"), node("else")},

	"Expr_FuncCall":              {node("name"), args("args")},
	"Expr_MethodCall":            {node("var"), node("name"), args("args")},
	"Expr_NullsafeMethodCall":    {node("var"), node("name"), args("args")},
	"Expr_StaticCall":            {node("class"), node("name"), args("args")},
	"Expr_New":                   {node("class"), args("args")},
	"Expr_PropertyFetch":         {node("var"), node("name")},
	"Expr_NullsafePropertyFetch": {node("var"), node("name")},
	"Expr_ClassConstFetch":       {node("class"), node("name")},

	"Expr_Array":     {list("items")},
	"Expr_ArrayItem": {node("value"), node("key")},

	KindArg:            {node("value")},
	KindName:           {parts("parts")},
	KindFullyQualified: {parts("parts")},
	KindIdentifier:     {leaf("name")},

	"Scalar_LNumber": {leaf("value")},
	"Scalar_DNumber": {leaf("value")},
	"Scalar_String":  {leaf("value")},
}

func init() {
	for _, op := range BinaryOps {
		schemas["Expr_BinaryOp_"+op] = []FieldSpec{node("left"), node("right")}
	}
	for _, op := range AssignOps {
		schemas["Expr_AssignOp_"+op] = []FieldSpec{node("var"), node("expr")}
	}
}

// Schema returns the declared fields of a node kind.
func Schema(kind string) ([]FieldSpec, bool) {
	spec, ok := schemas[kind]
	return spec, ok
}

// RoleOf returns the role of a field of the given kind.
func RoleOf(kind, field string) (Role, bool) {
	spec, _ := Schema(kind)
	for _, fs := range spec {
		if fs.Name == field {
			return fs.Role, true
		}
	}
	return 0, false
}

// Kinds returns every registered kind, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(schemas))
	for k := range schemas {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// reservedClasses are basenames PHP-Parser suffixes with an underscore
// because they are PHP keywords.
var reservedClasses = map[string]bool{
	"Array": true, "Echo": true, "New": true, "Return": true, "String": true,
	"List": true, "Print": true, "Static": true, "Function": true, "Include": true,
}

// ClassName returns the namespaced class of a kind relative to the node
// namespace, e.g. Expr_BinaryOp_Plus -> Expr\BinaryOp\Plus and
// Stmt_Return -> Stmt\Return_.
func ClassName(kind string) string {
	class := strings.ReplaceAll(kind, "_", `\`)
	if reservedClasses[ShortName(kind)] {
		class += "_"
	}
	return class
}

// ShortName returns the class basename of a kind, e.g. Expr_FuncCall -> FuncCall.
func ShortName(kind string) string {
	if i := strings.LastIndexByte(kind, '_'); i >= 0 {
		return kind[i+1:]
	}
	return kind
}
