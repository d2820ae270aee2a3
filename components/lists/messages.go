package lists

import "github.com/goliatone/go-contactdesk/pkg/locale"

// Messages holds the user-facing strings of a list widget.
type Messages struct {
	Loading           string
	Failed            string
	Empty             string
	FilterPlaceholder string
	Reload            string
}

// DefaultMessages is the Traditional Chinese catalogue.
func DefaultMessages() Messages {
	return Messages{
		Loading:           "載入中…",
		Failed:            "載入失敗，請稍後再試。",
		Empty:             "無符合資料",
		FilterPlaceholder: "輸入關鍵字篩選…",
		Reload:            "重新載入",
	}
}

func EnglishMessages() Messages {
	return Messages{
		Loading:           "Loading…",
		Failed:            "Failed to load, please try again later.",
		Empty:             "No matching data",
		FilterPlaceholder: "Type to filter…",
		Reload:            "Reload",
	}
}

// MessagesForLocale picks a catalogue by BCP 47 tag, falling back to the
// default for anything that is not English.
func MessagesForLocale(value string) Messages {
	if locale.IsEnglish(value) {
		return EnglishMessages()
	}
	return DefaultMessages()
}

func (m Messages) withDefaults() Messages {
	def := DefaultMessages()
	if m.Loading == "" {
		m.Loading = def.Loading
	}
	if m.Failed == "" {
		m.Failed = def.Failed
	}
	if m.Empty == "" {
		m.Empty = def.Empty
	}
	if m.FilterPlaceholder == "" {
		m.FilterPlaceholder = def.FilterPlaceholder
	}
	if m.Reload == "" {
		m.Reload = def.Reload
	}
	return m
}
