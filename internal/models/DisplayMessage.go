package models

// DisplayMessage is a message ready for rendering. Replies are only ever
// populated on thread roots.
type DisplayMessage struct {
	TS            string
	UserID        string
	UserName      string
	UserLabel     string
	FormattedTime string
	Text          string
	IsThreadRoot  bool
	MonthID       string
	MonthName     string
	NewMonth      bool
	TemporalGap   string
	Color         string
	Replies       []*DisplayMessage
}

type MonthMarker struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
