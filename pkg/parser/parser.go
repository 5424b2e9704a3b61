// Package parser implements the byte-driven state machine for the CFG
// configuration format: INI-style sections extended with section
// inheritance, attribute lists, quoted multi-line strings, two comment
// styles and a #include preprocessor directive.
package parser

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	ast "github.com/honeybbq/cfgparser/pkg/ast/cfg"
	"github.com/honeybbq/cfgparser/pkg/cfgerrors"
)

const (
	commentChar      = ';'
	commentMultiline = '|'
)

// Parser feeds CFG text into an ast.Document. One Parser may load several
// files into the same document; includes reuse the same instance
// recursively.
type Parser struct {
	doc         *ast.Document
	fs          afero.Fs
	basePath    string
	messageFunc func(string)
	maxDepth    int

	currentFile string
	depth       int
}

// New creates a Parser writing into doc. Zero-value Options select the OS
// filesystem, the zerolog sink and the default include depth bound.
func New(doc *ast.Document, opts Options) *Parser {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.MessageFunc == nil {
		opts.MessageFunc = DefaultMessageFunc
	}
	if opts.MaxIncludeDepth <= 0 {
		opts.MaxIncludeDepth = DefaultMaxIncludeDepth
	}
	return &Parser{
		doc:         doc,
		fs:          opts.Fs,
		basePath:    opts.BasePath,
		messageFunc: opts.MessageFunc,
		maxDepth:    opts.MaxIncludeDepth,
	}
}

// CurrentFile returns the path of the file most recently handed to
// ParseFile, include frames included while they are active.
func (p *Parser) CurrentFile() string {
	return p.currentFile
}

// ParseFile loads and parses one file. An unreadable file is reported to
// the sink and returned as a KindIO error; the document is left untouched.
// Syntactic and semantic problems inside a readable file only go to the
// sink.
func (p *Parser) ParseFile(path string) error {
	p.currentFile = path

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		p.message(fmt.Sprintf("Cannot open file %q.", path))
		return cfgerrors.New(cfgerrors.KindIO, err)
	}

	p.Parse(data)
	return nil
}

// Parse runs the state machine over an in-memory buffer.
func (p *Parser) Parse(data []byte) {
	m := &machine{
		parser:       p,
		state:        StateNewLine,
		line:         1,
		ignoreSpaces: true,
	}
	for _, c := range data {
		m.step(c)
	}
	m.finish()
}

func (p *Parser) message(text string) {
	if p.messageFunc != nil {
		p.messageFunc(text)
	}
}

// include resolves one #include directive: the current file path is saved,
// the target parsed into the same document, and the path restored.
func (p *Parser) include(path string) {
	saved := p.currentFile
	p.depth++
	_ = p.ParseFile(p.basePath + path) // open failure already went to the sink
	p.depth--
	p.currentFile = saved
}

// machine holds the per-file frame of the automaton: the state, the line
// scratch buffers and the handle of the section currently receiving writes.
type machine struct {
	parser *Parser

	state        State
	line         int
	pos          int
	ignoreSpaces bool
	escaped      bool
	keyAccepted  bool

	section     strings.Builder
	inheritance strings.Builder
	attribute   strings.Builder
	key         strings.Builder
	value       strings.Builder
	directive   strings.Builder
	argument    strings.Builder

	active     *ast.Section
	activeName string
}

func (m *machine) message(text string) {
	m.parser.message(fmt.Sprintf("Error at line %d, character at %d : %s", m.line, m.pos, text))
}

// step classifies one byte against the current state.
func (m *machine) step(c byte) {
	// A pending escape consumes the next byte without advancing the
	// column, exactly as the two bytes form one value character.
	if m.escaped {
		m.escaped = false
		switch c {
		case '\\':
			m.value.WriteByte('\\')
		case 'n':
			m.value.WriteByte('\n')
		case '"':
			m.value.WriteByte('"')
		case '\'':
			m.value.WriteByte('\'')
		default:
			m.message("Unknown escape-sequence symbol")
		}
		return
	}

	// An errored line is abandoned wholesale until the next newline.
	if m.state == StateError && c != '\n' {
		m.pos++
		return
	}

	switch c {
	case commentChar:
		switch m.state {
		case StateStringValue:
			m.value.WriteByte(c)
		case StateComment, StateMultilineComment:
		default:
			m.flushLineTokens()
			m.state = StateComment
		}

	case commentMultiline:
		switch m.state {
		case StateStringValue:
			m.value.WriteByte(c)
		case StateComment:
			// a line comment runs to end of line, pipes included
		case StateMultilineComment:
			m.state = StateNewLine
		default:
			m.flushLineTokens()
			m.state = StateMultilineComment
		}

	case ' ', '\t':
		switch m.state {
		case StateStringValue:
			m.value.WriteByte(c)
		case StatePreprocessor:
			if m.directive.String() == "include" {
				m.state = StateInclude
			}
			m.directive.Reset()
		case StateSection, StateInheritance, StateAttribute, StateKey, StateValue:
			if !m.ignoreSpaces {
				m.state = StateError
				m.message("Space in wrong place")
			}
		}

	case '\\':
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateStringValue:
			m.escaped = true
		default:
			m.state = StateError
			m.message("Unexpected escape-symbol")
		}

	case '"':
		switch m.state {
		case StateStringValue:
			m.state = StateValue
		case StateValue:
			m.state = StateStringValue
		}

	case '#':
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateNewLine:
			m.state = StatePreprocessor
			m.directive.Reset()
			m.argument.Reset()
		case StateStringValue:
			m.value.WriteByte(c)
		default:
			m.state = StateError
			m.message("Preprocessor parse error")
		}

	case '\n':
		m.newline()

	case '<':
		switch m.state {
		case StateStringValue:
			m.value.WriteByte(c)
		case StateInclude:
			// opening delimiter of the include argument
		}

	case '>':
		switch m.state {
		case StateStringValue:
			m.value.WriteByte(c)
		case StateInclude:
			m.includeFile(m.argument.String())
			m.argument.Reset()
		}

	case '[':
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateNewLine:
			m.ignoreSpaces = false
			m.state = StateSection
			m.section.Reset()
			m.active = nil
			m.activeName = ""
		case StateStringValue:
			m.value.WriteByte(c)
		default:
			m.state = StateError
			m.message("Section naming parse error")
		}

	case ']':
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateSection:
			m.commitSection()
			m.ignoreSpaces = true
		case StateStringValue:
			m.value.WriteByte(c)
		default:
			m.state = StateError
			m.message("Section naming parse error")
		}

	case ',':
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateInheritance:
			m.pushInheritance()
		case StateAttribute:
			m.pushAttribute()
		case StateStringValue, StateValueArray:
			m.value.WriteByte(c)
		case StateValue:
			m.state = StateValueArray
			m.value.WriteByte(c)
		default:
			m.state = StateError
			m.message("Enumeration error")
		}

	case ':':
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateSection:
			m.state = StateInheritance
		case StateStringValue:
			m.value.WriteByte(c)
		default:
			m.state = StateError
			m.message("Inheritance error")
		}

	case '=':
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateSection:
			m.state = StateAttribute
		case StateInheritance:
			m.pushInheritance()
			m.state = StateAttribute
		case StateKey:
			m.commitKey()
			m.state = StateValue
		case StateStringValue:
			m.value.WriteByte(c)
		default:
			m.state = StateError
			m.message("Set value error")
		}

	case '\r':
		// text-mode parity: carriage returns never reach the model

	default:
		switch m.state {
		case StateComment, StateMultilineComment:
		case StateNewLine:
			if !isIdentChar(c) {
				m.state = StateError
				m.message("Invalid character error")
				break
			}
			m.state = StateKey
			m.key.WriteByte(c)
		case StatePreprocessor:
			m.directive.WriteByte(c)
		case StateInclude:
			m.argument.WriteByte(c)
		case StateSection:
			m.appendIdent(&m.section, c)
		case StateInheritance:
			m.appendIdent(&m.inheritance, c)
		case StateAttribute:
			m.appendIdent(&m.attribute, c)
		case StateKey:
			m.appendIdent(&m.key, c)
		case StateValue, StateValueArray, StateStringValue:
			m.value.WriteByte(c)
		default:
			m.state = StateError
			m.message("Invalid character error")
		}
	}

	m.pos++
}

// finish settles the frame at end of input: a missing trailing newline is
// treated as a final end-of-line, an open quoted string is a diagnostic,
// an open block comment simply runs to end of file.
func (m *machine) finish() {
	switch m.state {
	case StateStringValue:
		m.message("Unterminated string value")
	case StateMultilineComment, StateNewLine:
	default:
		m.step('\n')
	}
}

// newline commits whatever the line left in progress and re-arms the
// per-line state. Quoted strings and block comments are the two states
// that survive the line break.
func (m *machine) newline() {
	switch m.state {
	case StateComment, StateMultilineComment:
	case StateInheritance:
		m.pushInheritance()
	case StatePreprocessor, StateInclude:
		m.directive.Reset()
		m.argument.Reset()
	case StateAttribute:
		m.pushAttribute()
	case StateValue, StateValueArray:
		m.commitValue()
	case StateStringValue, StateNewLine, StateSection, StateError:
	default:
		m.message("New line parse error")
		m.state = StateError
	}

	if m.state != StateStringValue && m.state != StateMultilineComment {
		m.state = StateNewLine
		m.pos = 0
		// abandoned line scratch must not leak into the next line
		m.section.Reset()
		m.inheritance.Reset()
		m.attribute.Reset()
		m.key.Reset()
		m.value.Reset()
	}

	m.line++
	m.ignoreSpaces = true
}

// flushLineTokens treats the start of a comment like an end of line for
// whatever token was in progress, so that stripping comments from a file
// cannot change the resulting model.
func (m *machine) flushLineTokens() {
	switch m.state {
	case StateInheritance:
		m.pushInheritance()
	case StateAttribute:
		m.pushAttribute()
	case StateValue, StateValueArray:
		m.commitValue()
	}
}

func (m *machine) appendIdent(b *strings.Builder, c byte) {
	if !isIdentChar(c) {
		m.state = StateError
		m.message("Invalid character error")
		return
	}
	b.WriteByte(c)
}

// commitSection closes a section header at ']'. A duplicate name leaves
// the active handle nil, so the rest of the block is swallowed without
// effect until the next header.
func (m *machine) commitSection() {
	name := m.section.String()
	if name == "" {
		m.message("Section name is empty")
		return
	}
	section, ok := m.parser.doc.Add(name)
	if !ok {
		m.message(fmt.Sprintf("Section %q already exist.", name))
		return
	}
	m.active = section
	m.activeName = name
}

// commitKey inserts the accumulated key with an empty initial value. On a
// duplicate the first-seen binding is kept and the upcoming value commit
// is suppressed.
func (m *machine) commitKey() {
	if m.active == nil {
		m.keyAccepted = false
		return
	}
	key := m.key.String()
	m.keyAccepted = m.active.PutValue(key, "")
	if !m.keyAccepted {
		m.message(fmt.Sprintf("Section %q key %q already exist.", m.activeName, key))
	}
}

func (m *machine) commitValue() {
	if m.active != nil && m.keyAccepted {
		m.active.SetValue(m.key.String(), m.value.String())
	}
	m.key.Reset()
	m.value.Reset()
	m.keyAccepted = false
}

// pushInheritance appends the pending inheritance token, validating that
// the base section already exists. Forward references are dropped with a
// diagnostic.
func (m *machine) pushInheritance() {
	if m.inheritance.Len() == 0 {
		return
	}
	name := m.inheritance.String()
	m.inheritance.Reset()
	if m.active == nil {
		return
	}
	if !m.parser.doc.Has(name) {
		m.message(fmt.Sprintf("Inherited section %q is not exist!", name))
		return
	}
	m.active.Inheritances = append(m.active.Inheritances, name)
}

func (m *machine) pushAttribute() {
	if m.attribute.Len() == 0 {
		return
	}
	attribute := m.attribute.String()
	m.attribute.Reset()
	if m.active == nil {
		return
	}
	m.active.Attributes = append(m.active.Attributes, attribute)
}

func (m *machine) includeFile(path string) {
	if m.parser.depth >= m.parser.maxDepth {
		m.message(fmt.Sprintf("Include depth limit (%d) exceeded at %q", m.parser.maxDepth, path))
		return
	}
	m.parser.include(path)
}
