package synth

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/getlawrence/nodediff/internal/ast"
)

// Emitter renders synthesized construction code in one target language.
type Emitter interface {
	// Name identifies the emitter in configuration.
	Name() string
	// Base returns the temporary base name for a node kind.
	Base(kind string) string
	// Temp renders an allocated temporary identifier.
	Temp(name string) string
	Literal(s string) string
	Parts(parts []string) string
	List(temps []string) string
	Null() string
	// Reference renders an expression reading the value at p off the
	// original root node.
	Reference(p ast.Path) string
	// Construct renders one statement binding a new node of kind to temp.
	Construct(temp, kind string, args []string) string
}

// NewEmitter returns the emitter registered under name.
func NewEmitter(name, root string) (Emitter, error) {
	switch strings.ToLower(name) {
	case "", "php":
		return NewPHPEmitter(root, DefaultNamespace), nil
	case "go":
		return NewGoEmitter(root), nil
	}
	return nil, fmt.Errorf("unknown emitter %q (valid: php, go)", name)
}

// lcfirst lowercases the first rune of s.
func lcfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// DefaultNamespace is the PHP namespace node classes live in.
const DefaultNamespace = `PhpParser\Node`

// PHPEmitter renders PHP-Parser construction code.
type PHPEmitter struct {
	Root      string
	Namespace string
}

func NewPHPEmitter(root, namespace string) *PHPEmitter {
	if root == "" {
		root = "node"
	}
	return &PHPEmitter{Root: strings.TrimPrefix(root, "$"), Namespace: strings.Trim(namespace, `\`)}
}

func (e *PHPEmitter) Name() string { return "php" }

func (e *PHPEmitter) Base(kind string) string {
	class := ast.ClassName(kind)
	if i := strings.LastIndexByte(class, '\\'); i >= 0 {
		class = class[i+1:]
	}
	return lcfirst(class)
}

func (e *PHPEmitter) Temp(name string) string { return "$" + name }

func (e *PHPEmitter) Literal(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func (e *PHPEmitter) Parts(parts []string) string { return e.Literal(strings.Join(parts, `\`)) }

func (e *PHPEmitter) List(temps []string) string { return "[" + strings.Join(temps, ", ") + "]" }

func (e *PHPEmitter) Null() string { return "null" }

func (e *PHPEmitter) Reference(p ast.Path) string {
	var b strings.Builder
	b.WriteString("$" + e.Root)
	for _, s := range p.Steps {
		b.WriteString("->" + s.Field)
		if s.Index >= 0 {
			fmt.Fprintf(&b, "[%d]", s.Index)
		}
	}
	if p.Leaf != "" {
		b.WriteString("->" + p.Leaf)
	}
	return b.String()
}

func (e *PHPEmitter) Construct(temp, kind string, args []string) string {
	class := ast.ClassName(kind)
	if e.Namespace != "" {
		class = e.Namespace + `\` + class
	}
	return fmt.Sprintf(`%s = new \%s(%s);`, temp, class, strings.Join(args, ", "))
}

// GoEmitter renders Go code building nodes of package ast.
type GoEmitter struct {
	Root string
}

func NewGoEmitter(root string) *GoEmitter {
	if root == "" {
		root = "node"
	}
	return &GoEmitter{Root: strings.TrimPrefix(root, "$")}
}

func (e *GoEmitter) Name() string { return "go" }

// predeclared identifiers a temporary must not shadow.
var predeclared = map[string]bool{
	"string": true, "new": true, "len": true, "append": true, "nil": true,
	"true": true, "false": true, "error": true, "print": true,
}

func (e *GoEmitter) Base(kind string) string {
	base := lcfirst(ast.ShortName(kind))
	if token.IsKeyword(base) || predeclared[base] || base == e.Root || base == "ast" {
		base += "Node"
	}
	return base
}

func (e *GoEmitter) Temp(name string) string { return name }

func (e *GoEmitter) Literal(s string) string { return strconv.Quote(s) }

func (e *GoEmitter) Parts(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = strconv.Quote(p)
	}
	return "ast.Parts{" + strings.Join(quoted, ", ") + "}"
}

func (e *GoEmitter) List(temps []string) string { return "ast.List{" + strings.Join(temps, ", ") + "}" }

func (e *GoEmitter) Null() string { return "nil" }

func (e *GoEmitter) Reference(p ast.Path) string {
	var b strings.Builder
	b.WriteString(e.Root)
	for _, s := range p.Steps {
		if s.Index >= 0 {
			fmt.Fprintf(&b, ".Child(%q, %d)", s.Field, s.Index)
		} else {
			fmt.Fprintf(&b, ".Child(%q)", s.Field)
		}
	}
	if p.Leaf != "" {
		fmt.Fprintf(&b, ".Text(%q)", p.Leaf)
	}
	return b.String()
}

func (e *GoEmitter) Construct(temp, kind string, args []string) string {
	all := append([]string{strconv.Quote(kind)}, args...)
	return fmt.Sprintf("%s := ast.MustNew(%s)", temp, strings.Join(all, ", "))
}
