package models

// MissingText stands in for a record that carries no text field at all.
const MissingText = "---"

// Profile is the user_profile sub-record some exports attach to a message.
type Profile struct {
	DisplayName string `json:"display_name"`
	RealName    string `json:"real_name"`
	Name        string `json:"name"`
}

// RawMessage is one record of a day file, decoded as-is.
type RawMessage struct {
	Type        string   `json:"type,omitempty"`
	Subtype     string   `json:"subtype,omitempty"`
	TS          string   `json:"ts"`
	User        string   `json:"user,omitempty"`
	ThreadTS    string   `json:"thread_ts,omitempty"`
	Text        *string  `json:"text,omitempty"`
	UserProfile *Profile `json:"user_profile,omitempty"`
}

func (m *RawMessage) Body() string {
	if m.Text == nil {
		return MissingText
	}
	return *m.Text
}

// IsReply reports whether the message points at a different thread root.
func (m *RawMessage) IsReply() bool {
	return m.ThreadTS != "" && m.ThreadTS != m.TS
}

// DayBatch holds the records of one day file in file order.
type DayBatch struct {
	Name     string
	Messages []RawMessage
}
