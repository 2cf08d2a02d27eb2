// Package source reads code snippets from disk and makes sure they are PHP.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-enry/go-enry/v2"
)

// ErrNotPHP is returned for inputs that are recognisably another language.
var ErrNotPHP = errors.New("not a PHP source")

const php = "PHP"

// Load reads path, or standard input when path is "-", and checks the
// content is plausibly PHP.
func Load(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := Check(path, data); err != nil {
		return "", err
	}
	return string(data), nil
}

// Check rejects binary content and files whose extension enry maps only to
// languages other than PHP. Unknown extensions and plain text pass.
func Check(path string, content []byte) error {
	if enry.IsBinary(content) {
		return fmt.Errorf("%w: %s is binary", ErrNotPHP, path)
	}
	if path == "-" {
		return nil
	}
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	if len(candidates) == 0 {
		return nil
	}
	for _, lang := range candidates {
		if lang == php || lang == "Text" {
			return nil
		}
	}
	return fmt.Errorf("%w: %s looks like %s", ErrNotPHP, path, candidates[0])
}

// Language reports the language enry detects for a file, for diagnostics.
func Language(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		return lang
	}
	return enry.GetLanguage(path, content)
}
