package templates

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/getlawrence/nodediff/internal/ast"
)

//go:embed files/*.tmpl
var templateFS embed.FS

// RuleData contains all data needed to scaffold a rewrite rule
type RuleData struct {
	Name          string   `json:"name"`
	Namespace     string   `json:"namespace"`
	NodeNamespace string   `json:"node_namespace"`
	Description   string   `json:"description"`
	Hook          string   `json:"hook,omitempty"`
	Statements    []string `json:"statements"`
	Root          string   `json:"root,omitempty"`
	Original      string   `json:"original"`
	Expected      string   `json:"expected"`
}

// HookClass is the fully qualified PHP class the rule hooks on. Without a
// hook the rule matches any node.
func (d RuleData) HookClass() string {
	ns := strings.Trim(d.NodeNamespace, `\`)
	if d.Hook == "" {
		return ns
	}
	return ns + `\` + ast.ClassName(d.Hook)
}

// GeneratedFile is a scaffolded file and its content
type GeneratedFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// TemplateEngine handles template loading and execution
type TemplateEngine struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"phpquote": phpQuote,
	"trim":     strings.TrimSpace,
}

// NewTemplateEngine creates a new template engine
func NewTemplateEngine() (*TemplateEngine, error) {
	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	if err := engine.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return engine, nil
}

// Render executes the named template with data
func (e *TemplateEngine) Render(name string, data interface{}) (string, error) {
	tmpl, exists := e.templates[name]
	if !exists {
		return "", fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template %s execution failed: %w", name, err)
	}

	return buf.String(), nil
}

var ruleName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Scaffold renders a rule in the emitter's language plus its fixture, under
// outDir/rules and outDir/fixtures. Files are written unless dryRun is set;
// either way the rendered files are returned.
func (e *TemplateEngine) Scaffold(data RuleData, emitter, outDir string, dryRun bool) ([]GeneratedFile, error) {
	if !ruleName.MatchString(data.Name) {
		return nil, fmt.Errorf("invalid rule name %q", data.Name)
	}

	var ruleTmpl, ext string
	switch strings.ToLower(emitter) {
	case "", "php":
		ruleTmpl, ext = "php_rule", ".php"
	case "go":
		ruleTmpl, ext = "go_rule", ".go"
	default:
		return nil, fmt.Errorf("no rule template for emitter %q", emitter)
	}

	rule, err := e.Render(ruleTmpl, data)
	if err != nil {
		return nil, err
	}
	fixture, err := e.Render("fixture", data)
	if err != nil {
		return nil, err
	}

	ruleFile := data.Name + ext
	if ext == ".go" {
		ruleFile = SnakeCase(data.Name) + ext
	}
	files := []GeneratedFile{
		{Path: filepath.Join(outDir, "rules", ruleFile), Content: rule},
		{Path: filepath.Join(outDir, "fixtures", SnakeCase(data.Name)+".php.inc"), Content: fixture},
	}
	if dryRun {
		return files, nil
	}

	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(f.Path, []byte(f.Content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}
	return files, nil
}

func (e *TemplateEngine) loadTemplates() error {
	entries, err := templateFS.ReadDir("files")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		content, err := templateFS.ReadFile(path.Join("files", entry.Name()))
		if err != nil {
			return err
		}

		key := strings.TrimSuffix(entry.Name(), ".tmpl")
		tmpl, err := template.New(key).Funcs(funcs).Parse(string(content))
		if err != nil {
			return err
		}
		e.templates[key] = tmpl
	}

	return nil
}

// GetAvailableTemplates returns all available template keys
func (e *TemplateEngine) GetAvailableTemplates() []string {
	var keys []string
	for key := range e.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SnakeCase converts a CamelCase rule name to snake_case.
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func phpQuote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
