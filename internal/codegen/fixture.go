package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// FixtureExt is the extension of rule test fixtures
const FixtureExt = ".php.inc"

const fixtureSeparator = "-----"

var separatorLine = regexp.MustCompile(`(?m)^-----\s*$`)

// Fixture is an original/expected pair in the rule fixture format: the
// original code, a line of five dashes, then the expected code. A fixture
// without separator expects the code to stay unchanged.
type Fixture struct {
	Name     string `json:"name" yaml:"name"`
	Original string `json:"original" yaml:"original"`
	Expected string `json:"expected" yaml:"expected"`
}

// ParseFixture splits fixture content into its two halves
func ParseFixture(name, content string) (Fixture, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	locs := separatorLine.FindAllStringIndex(content, -1)
	switch len(locs) {
	case 0:
		return Fixture{Name: name, Original: content, Expected: content}, nil
	case 1:
		return Fixture{
			Name:     name,
			Original: strings.TrimSpace(content[:locs[0][0]]) + "\n",
			Expected: strings.TrimSpace(content[locs[0][1]:]) + "\n",
		}, nil
	}
	return Fixture{}, fmt.Errorf("fixture %s has %d separators, want at most one", name, len(locs))
}

// Format renders the fixture back into its file form
func (f Fixture) Format() string {
	return strings.TrimSpace(f.Original) + "\n" + fixtureSeparator + "\n" + strings.TrimSpace(f.Expected) + "\n"
}

// LoadFixtures reads every fixture file in dir, sorted by name
func LoadFixtures(dir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), FixtureExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	fixtures := make([]Fixture, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
		}
		f, err := ParseFixture(strings.TrimSuffix(name, FixtureExt), string(content))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}
