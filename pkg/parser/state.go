package parser

// State is the parse automaton state. The machine holds exactly one State
// and classifies every input byte against it.
type State uint8

const (
	StateNewLine State = iota
	StateSection
	StateInheritance
	StateAttribute
	StateKey
	StateValue
	StateValueArray
	StateStringValue
	StateComment
	StateMultilineComment
	StatePreprocessor
	StateInclude
	StateError
)

var stateNames = [...]string{
	StateNewLine:          "new_line",
	StateSection:          "section",
	StateInheritance:      "inheritance",
	StateAttribute:        "attribute",
	StateKey:              "key",
	StateValue:            "value",
	StateValueArray:       "value_array",
	StateStringValue:      "string_value",
	StateComment:          "comment",
	StateMultilineComment: "multiline_comment",
	StatePreprocessor:     "preprocessor",
	StateInclude:          "include",
	StateError:            "error",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// isIdentChar reports whether c may appear in a section, inheritance,
// attribute or key identifier.
func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z')
}
