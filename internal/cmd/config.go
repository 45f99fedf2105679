package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Config prints the effective configuration of the server command, after
// config files, environment and flags have been applied.
type Config struct {
	Format string `help:"Output format: yaml, toml or json" default:"yaml" enum:"yaml,toml,json" env:"J2DX_CONFIG_FORMAT"`

	Server `embed:""`
}

// Run is called by Kong when the config command is executed.
func (c *Config) Run(kctx *kong.Context, logger *slog.Logger) error {
	values := effectiveValues(kctx.Flags())
	out, err := Render(values, c.Format)
	if err != nil {
		return err
	}
	logger.Debug("Rendered configuration", "format", c.Format, "keys", len(values))
	_, err = kctx.Stdout.Write(out)
	return err
}

var skipFlags = map[string]bool{"help": true, "config": true, "format": true}

// effectiveValues maps flag names to their current values. The keys are the
// names the configuration loaders resolve, so the output can be saved as a
// config file.
func effectiveValues(flags []*kong.Flag) map[string]any {
	values := make(map[string]any, len(flags))
	for _, f := range flags {
		if f.Hidden || skipFlags[f.Name] || !f.Target.IsValid() {
			continue
		}
		switch v := f.Target.Interface().(type) {
		case time.Duration:
			values[f.Name] = v.String()
		default:
			values[f.Name] = v
		}
	}
	return values
}

// Render encodes a flat configuration map in the given format.
func Render(values map[string]any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(values)
	case "toml":
		return toml.Marshal(values)
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(values); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}
