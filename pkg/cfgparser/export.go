package cfgparser

import (
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/honeybbq/cfgparser/pkg/cfgerrors"
)

// DumpJSON writes a JSON rendering of the model snapshot, keyed by
// section name. Intended for tooling; the canonical form stays Save.
func (c *Config) DumpJSON(w io.Writer) error {
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Snapshot()); err != nil {
		return cfgerrors.New(cfgerrors.KindRender, err)
	}
	return nil
}

// DumpYAML writes a YAML rendering of the model snapshot.
func (c *Config) DumpYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(c.Snapshot()); err != nil {
		_ = enc.Close()
		return cfgerrors.New(cfgerrors.KindRender, err)
	}
	if err := enc.Close(); err != nil {
		return cfgerrors.New(cfgerrors.KindRender, err)
	}
	return nil
}
