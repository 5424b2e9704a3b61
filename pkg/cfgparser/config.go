// Package cfgparser is the consumer-facing surface of the CFG
// configuration format: loading files (includes resolved recursively),
// querying typed values by (section, key) with inheritance-aware lookup,
// and writing the in-memory model back to disk.
package cfgparser

import (
	"fmt"

	"github.com/spf13/afero"

	ast "github.com/honeybbq/cfgparser/pkg/ast/cfg"
	"github.com/honeybbq/cfgparser/pkg/cfgerrors"
	"github.com/honeybbq/cfgparser/pkg/parser"
	"github.com/honeybbq/cfgparser/pkg/renderer"
)

// Config owns one parsed model. It is not internally synchronized:
// concurrent reads after Load has returned are safe, anything involving a
// writer needs external locking.
type Config struct {
	doc             *ast.Document
	fs              afero.Fs
	renderer        renderer.Renderer[*ast.Document]
	basePath        string
	currentFile     string
	messageFunc     func(string)
	maxIncludeDepth int
}

// New creates an empty configuration with the OS filesystem and the
// default zerolog diagnostic sink.
func New() *Config {
	return &Config{
		doc:             ast.NewDocument(),
		fs:              afero.NewOsFs(),
		renderer:        renderer.NewPlainTextRenderer(),
		messageFunc:     parser.DefaultMessageFunc,
		maxIncludeDepth: parser.DefaultMaxIncludeDepth,
	}
}

// NewFromFile creates a configuration and immediately loads path.
// Load problems go to the diagnostic sink, as in Load.
func NewFromFile(path string) *Config {
	c := New()
	_ = c.Load(path)
	return c
}

// SetFs replaces the file backend used for loads and saves.
func (c *Config) SetFs(fs afero.Fs) {
	if fs != nil {
		c.fs = fs
	}
}

// SetBasePath sets the prefix prepended to every #include target.
func (c *Config) SetBasePath(path string) {
	c.basePath = path
}

// SetMessageFunc replaces the diagnostic sink. A nil sink silences
// diagnostics entirely.
func (c *Config) SetMessageFunc(fn func(string)) {
	c.messageFunc = fn
}

// SetMaxIncludeDepth bounds include recursion for subsequent loads.
func (c *Config) SetMaxIncludeDepth(depth int) {
	if depth > 0 {
		c.maxIncludeDepth = depth
	}
}

func (c *Config) message(text string) {
	if c.messageFunc != nil {
		c.messageFunc(text)
	}
}

// Load parses a file into the model. Sections accumulate across calls, so
// several files may be loaded into one Config. An unreadable primary file
// is reported to the sink and returned as a KindIO error; everything else
// only reaches the sink.
func (c *Config) Load(path string) error {
	p := parser.New(c.doc, parser.Options{
		Fs:              c.fs,
		BasePath:        c.basePath,
		MessageFunc:     c.message,
		MaxIncludeDepth: c.maxIncludeDepth,
	})
	c.currentFile = path
	return p.ParseFile(path)
}

// Render returns the model in canonical textual form.
func (c *Config) Render() ([]byte, error) {
	return c.renderer.Render(c.doc)
}

// Save writes the canonical textual form to path. Values are written
// verbatim, so a round-trip is only lossless for configurations whose
// values avoid structural characters.
func (c *Config) Save(path string) error {
	data, err := c.Render()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(c.fs, path, data, 0o644); err != nil {
		c.message(fmt.Sprintf("Cannot write file %q.", path))
		return cfgerrors.New(cfgerrors.KindIO, err)
	}
	return nil
}

// SaveCurrent writes the model back to the most recently loaded path.
func (c *Config) SaveCurrent() error {
	return c.Save(c.currentFile)
}

// HasSection reports whether the named section exists.
func (c *Config) HasSection(section string) bool {
	return c.doc.Has(section)
}

// HasKey reports whether the section itself binds key. Inheritance is not
// traversed; a missing section is reported to the sink.
func (c *Config) HasKey(section, key string) bool {
	s, ok := c.doc.Section(section)
	if !ok {
		c.message(fmt.Sprintf("Section %q is not exist!", section))
		return false
	}
	_, ok = s.Values[key]
	return ok
}

// SectionCount returns the number of sections in the model.
func (c *Config) SectionCount() int {
	return c.doc.Len()
}

// Snapshot 返回整个模型的深拷贝。
func (c *Config) Snapshot() map[string]ast.Section {
	return c.doc.Snapshot()
}

// SectionNames returns every section name in first-seen order.
func (c *Config) SectionNames() []string {
	return c.doc.Names()
}

// HasAttribute reports whether the section carries the attribute token.
func (c *Config) HasAttribute(section, attribute string) bool {
	s, ok := c.doc.Section(section)
	if !ok {
		return false
	}
	for _, a := range s.Attributes {
		if a == attribute {
			return true
		}
	}
	return false
}

// HasAttributes reports whether the section carries any attributes.
func (c *Config) HasAttributes(section string) bool {
	s, ok := c.doc.Section(section)
	if !ok {
		c.message(fmt.Sprintf("Section %q is not exist!", section))
		return false
	}
	return len(s.Attributes) > 0
}

// Attributes returns the section's attribute tokens in declaration order.
func (c *Config) Attributes(section string) []string {
	s, ok := c.doc.Section(section)
	if !ok {
		c.message(fmt.Sprintf("Section %q is not exist!", section))
		return nil
	}
	return append([]string(nil), s.Attributes...)
}

// IsInheritedFrom reports whether base appears in the section's own
// inheritance list. Bases of bases are not consulted.
func (c *Config) IsInheritedFrom(section, base string) bool {
	s, ok := c.doc.Section(section)
	if !ok {
		return false
	}
	for _, inherited := range s.Inheritances {
		if inherited == base {
			return true
		}
	}
	return false
}

// HasInheritances reports whether the section declares any bases.
func (c *Config) HasInheritances(section string) bool {
	s, ok := c.doc.Section(section)
	if !ok {
		c.message(fmt.Sprintf("Section %q is not exist!", section))
		return false
	}
	return len(s.Inheritances) > 0
}

// Inheritances returns the section's bases in priority order.
func (c *Config) Inheritances(section string) []string {
	s, ok := c.doc.Section(section)
	if !ok {
		c.message(fmt.Sprintf("Section %q is not exist!", section))
		return nil
	}
	return append([]string(nil), s.Inheritances...)
}

// GetString resolves a value: the section's own binding wins, otherwise
// the bases are walked in declaration order and the first one binding key
// wins. The walk is depth-one, bases of bases are never consulted.
func (c *Config) GetString(section, key, defaultValue string) string {
	s, ok := c.doc.Section(section)
	if !ok {
		return defaultValue
	}
	if value, ok := s.Values[key]; ok {
		return value
	}
	if value, ok := c.valueFromInheritance(s, key); ok {
		return value
	}
	return defaultValue
}

func (c *Config) valueFromInheritance(section *ast.Section, key string) (string, bool) {
	for _, name := range section.Inheritances {
		base, ok := c.doc.Section(name)
		if !ok {
			continue
		}
		if value, ok := base.Values[key]; ok {
			return value, true
		}
	}
	return "", false
}

// SetString replaces the raw value of an existing (section, key) pair.
// It never creates sections or keys; a miss is reported to the sink and
// the model is left untouched.
func (c *Config) SetString(section, key, value string) {
	s, ok := c.doc.Section(section)
	if !ok {
		c.message(fmt.Sprintf("Section %q is not exist!", section))
		return
	}
	if !s.SetValue(key, value) {
		c.message(fmt.Sprintf("Section %q key %q is not exist!", section, key))
	}
}
