// Package renderer writes a CFG document back out in the canonical
// textual form. It is the inverse of the parser restricted to canonical
// input: raw value strings are emitted verbatim, never re-quoted or
// re-escaped.
package renderer

import (
	"fmt"
	"strings"

	ast "github.com/honeybbq/cfgparser/pkg/ast/cfg"
	"github.com/honeybbq/cfgparser/pkg/cfgerrors"
)

// PlainTextRenderer 将 CFG 文档渲染为纯文本 DSL。
type PlainTextRenderer struct{}

func NewPlainTextRenderer() *PlainTextRenderer {
	return &PlainTextRenderer{}
}

// Render emits every section exactly once, in first-seen order:
// the [name] header with optional " : " inheritance and " = " attribute
// lists, one "key = value" line per binding, then a blank separator line.
func (r *PlainTextRenderer) Render(doc *ast.Document) ([]byte, error) {
	if doc == nil {
		return nil, cfgerrors.New(cfgerrors.KindRender, fmt.Errorf("document is nil"))
	}

	var b strings.Builder
	for _, name := range doc.Names() {
		section, ok := doc.Section(name)
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "[%s]", name)

		if len(section.Inheritances) > 0 {
			b.WriteString(" : ")
			b.WriteString(strings.Join(section.Inheritances, ", "))
		}
		if len(section.Attributes) > 0 {
			b.WriteString(" = ")
			b.WriteString(strings.Join(section.Attributes, ", "))
		}
		b.WriteByte('\n')

		for _, key := range section.Keys() {
			fmt.Fprintf(&b, "%s = %s\n", key, section.Values[key])
		}

		b.WriteByte('\n')
	}

	return []byte(b.String()), nil
}
