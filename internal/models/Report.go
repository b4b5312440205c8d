package models

type PosterCount struct {
	User     string `json:"user"`
	Messages int    `json:"messages"`
}

type UserRatio struct {
	User         string  `json:"user"`
	Ratio        float64 `json:"ratio"`
	Rate         float64 `json:"rate_per_million"`
	Count        int     `json:"count"`
	Total        int     `json:"total_words"`
	SharePercent float64 `json:"share_percent"`
	Strong       bool    `json:"strong"`
}

type WordReport struct {
	Word                string      `json:"word"`
	Count               int         `json:"count"`
	IncidencePerMillion float64     `json:"incidence_per_million"`
	Users               []UserRatio `json:"users"`
}

type WordShare struct {
	User     string  `json:"user"`
	Words    int     `json:"words"`
	Messages int     `json:"messages"`
	Percent  float64 `json:"percent"`
}

// ChannelReport is the statistics artifact written next to a transcript.
type ChannelReport struct {
	Channel            string        `json:"channel"`
	TotalMessages      int           `json:"total_messages"`
	TotalWords         int           `json:"total_words"`
	Posters            []PosterCount `json:"posters"`
	Overrepresentation []WordReport  `json:"overrepresentation"`
	WordShare          []WordShare   `json:"word_share"`
}
