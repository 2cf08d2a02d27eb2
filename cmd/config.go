package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getlawrence/nodediff/internal/codegen"
	"github.com/getlawrence/nodediff/internal/config"
	"github.com/getlawrence/nodediff/internal/logger"
	"github.com/getlawrence/nodediff/internal/parser"
	"github.com/getlawrence/nodediff/internal/synth"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config *config.Config
	Logger logger.Logger
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(cfg *config.Config, logger logger.Logger) *AppConfig {
	return &AppConfig{
		Config: cfg,
		Logger: logger,
	}
}

// generatorOptions overrides the configured generator settings per command
type generatorOptions struct {
	Emitter string
	Dialect string
	Root    string
}

// NewGenerator builds a generator from the configuration and overrides
func (a *AppConfig) NewGenerator(o generatorOptions) (*codegen.Generator, error) {
	emitterName := firstNonEmpty(o.Emitter, a.Config.Emitter)
	root := firstNonEmpty(o.Root, a.Config.RootVariable)

	var emitter synth.Emitter
	if strings.EqualFold(emitterName, "php") || emitterName == "" {
		emitter = synth.NewPHPEmitter(root, firstNonEmpty(a.Config.Rule.NodeNamespace, synth.DefaultNamespace))
	} else {
		e, err := synth.NewEmitter(emitterName, root)
		if err != nil {
			return nil, err
		}
		emitter = e
	}

	dialect, err := parser.ParseDialect(firstNonEmpty(o.Dialect, a.Config.Dialect))
	if err != nil {
		return nil, err
	}

	return codegen.NewGenerator(
		codegen.WithDialect(dialect),
		codegen.WithEmitter(emitter),
		codegen.WithLogger(a.Logger),
	), nil
}

// writeOutput encodes v in the configured format, or writes text for the
// text format.
func writeOutput(w io.Writer, format string, v interface{}, text string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case "text", "":
		_, err := io.WriteString(w, text)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
