package model

// ControlType is the simplified enum of form controls the contact form uses.
type ControlType string

const (
	ControlText     ControlType = "text"
	ControlEmail    ControlType = "email"
	ControlNumber   ControlType = "number"
	ControlTextarea ControlType = "textarea"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleFormat    = "format"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleInteger   = "integer"
)

// Field models a single input or textarea control. Numeric bounds are
// pointers so an undeclared bound can be told apart from zero. Integer marks
// number controls that accept whole values only.
type Field struct {
	Name        string      `json:"name"`
	Label       string      `json:"label,omitempty"`
	Type        ControlType `json:"type"`
	Required    bool        `json:"required"`
	Min         *float64    `json:"min,omitempty"`
	Max         *float64    `json:"max,omitempty"`
	Integer     bool        `json:"integer,omitempty"`
	MinLength   int         `json:"minLength,omitempty"`
	MaxLength   int         `json:"maxLength,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Numeric reports whether the control carries a number value.
func (f Field) Numeric() bool {
	return f.Type == ControlNumber
}

// Rules lists the constraint kinds that apply to the field, in evaluation
// order. Bounds and the integer rule only apply to numeric controls.
func (f Field) Rules() []string {
	var rules []string
	if f.Required {
		rules = append(rules, ValidationRuleRequired)
	}
	if f.Type == ControlEmail || f.Numeric() {
		rules = append(rules, ValidationRuleFormat)
	}
	if f.Numeric() && f.Min != nil {
		rules = append(rules, ValidationRuleMin)
	}
	if f.Numeric() && f.Max != nil {
		rules = append(rules, ValidationRuleMax)
	}
	if f.MinLength > 0 {
		rules = append(rules, ValidationRuleMinLength)
	}
	if f.MaxLength > 0 {
		rules = append(rules, ValidationRuleMaxLength)
	}
	if f.Numeric() && f.Integer {
		rules = append(rules, ValidationRuleInteger)
	}
	return rules
}

// FormModel is the top-level representation renderers and validators consume.
// Fields keep the declaration order of the source document.
type FormModel struct {
	ID          string  `json:"id"`
	Endpoint    string  `json:"endpoint"`
	Method      string  `json:"method"`
	Summary     string  `json:"summary,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Field returns the named field and whether it exists.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (m FormModel) Names() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Float returns a pointer to v, used when declaring bounds in code.
func Float(v float64) *float64 {
	return &v
}
