package render

import "strings"

// StateLabel is the status line shown above a table. An empty label is hidden.
type StateLabel struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// NewStateLabel derives visibility from the text.
func NewStateLabel(text string) StateLabel {
	text = strings.TrimSpace(text)
	return StateLabel{Text: text, Visible: text != ""}
}

// Style returns the inline display rule for the label element.
func (s StateLabel) Style() string {
	if s.Visible {
		return "display:block"
	}
	return "display:none"
}
