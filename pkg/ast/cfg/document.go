package cfg

// Document 表示完整的 CFG 配置集合。
// Section 名字全局唯一；names 记录首次出现顺序，渲染时保证确定性输出。
type Document struct {
	sections map[string]*Section
	names    []string
}

// Section 是最小模型节点：继承列表、属性列表和键值对。
// Inheritances 的顺序即查找优先级，靠前的 base 优先。
type Section struct {
	Inheritances []string          `json:"inheritances,omitempty" yaml:"inheritances,omitempty"`
	Attributes   []string          `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Values       map[string]string `json:"values" yaml:"values"`

	keys []string // first-seen order of Values
}

// NewDocument 创建空 Document 并初始化内部 map。
func NewDocument() *Document {
	return &Document{sections: make(map[string]*Section)}
}

// NewSection 创建 Section 并初始化内部 map。
func NewSection() *Section {
	return &Section{Values: make(map[string]string)}
}

// Add inserts a new named section. The second result is false and the
// existing record is returned untouched when the name is already taken.
func (d *Document) Add(name string) (*Section, bool) {
	if existing, ok := d.sections[name]; ok {
		return existing, false
	}
	section := NewSection()
	d.sections[name] = section
	d.names = append(d.names, name)
	return section, true
}

// Section returns the named section, or nil and false when absent.
func (d *Document) Section(name string) (*Section, bool) {
	section, ok := d.sections[name]
	return section, ok
}

// Has reports whether the named section exists.
func (d *Document) Has(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.sections)
}

// Names returns section names in first-seen order.
func (d *Document) Names() []string {
	return append([]string(nil), d.names...)
}

// PutValue inserts key with an initial value. It reports false and leaves
// the first-seen binding untouched when the key already exists.
func (s *Section) PutValue(key, value string) bool {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	if _, ok := s.Values[key]; ok {
		return false
	}
	s.Values[key] = value
	s.keys = append(s.keys, key)
	return true
}

// SetValue replaces the value bound to an existing key. It reports false
// without mutating the section when the key is absent.
func (s *Section) SetValue(key, value string) bool {
	if _, ok := s.Values[key]; !ok {
		return false
	}
	s.Values[key] = value
	return true
}

// Keys returns the section's keys in first-seen order.
func (s *Section) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() Section {
	clone := Section{
		Inheritances: append([]string(nil), s.Inheritances...),
		Attributes:   append([]string(nil), s.Attributes...),
		Values:       make(map[string]string, len(s.Values)),
		keys:         append([]string(nil), s.keys...),
	}
	for key, value := range s.Values {
		clone.Values[key] = value
	}
	return clone
}

// Snapshot 返回整个模型的深拷贝，调用方可以随意修改而不影响原文档。
func (d *Document) Snapshot() map[string]Section {
	snapshot := make(map[string]Section, len(d.sections))
	for name, section := range d.sections {
		snapshot[name] = section.Clone()
	}
	return snapshot
}
