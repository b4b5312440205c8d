package models

import (
	"sort"
	"strings"
)

// punctuationReplacer blanks the four sentence marks. Consecutive separators
// leave empty tokens behind and those are counted as words on purpose:
// historical reports were produced that way.
var punctuationReplacer = strings.NewReplacer(".", " ", "!", " ", "?", " ", ",", " ")

// WordStats accumulates word and message counts for one channel pass.
type WordStats struct {
	Words        map[string]int            `json:"words"`
	UserWords    map[string]map[string]int `json:"user_words"`
	UserTotals   map[string]int            `json:"user_totals"`
	Total        int                       `json:"total"`
	Messages     map[string]int            `json:"messages"`
	MessageTotal int                       `json:"message_total"`
}

func NewWordStats() *WordStats {
	return &WordStats{
		Words:      make(map[string]int),
		UserWords:  make(map[string]map[string]int),
		UserTotals: make(map[string]int),
		Messages:   make(map[string]int),
	}
}

// Tokenize lower-cases text, blanks punctuation and splits on single spaces.
func Tokenize(text string) []string {
	return strings.Split(punctuationReplacer.Replace(strings.ToLower(text)), " ")
}

func (ws *WordStats) Collect(user, text string) {
	perUser, ok := ws.UserWords[user]
	if !ok {
		perUser = make(map[string]int)
		ws.UserWords[user] = perUser
	}
	for _, w := range Tokenize(text) {
		ws.Words[w]++
		perUser[w]++
		ws.UserTotals[user]++
		ws.Total++
	}
}

func (ws *WordStats) CountMessage(user string) {
	ws.Messages[user]++
	ws.MessageTotal++
}

func (ws *WordStats) UserWordCount(user, word string) int {
	return ws.UserWords[user][word]
}

// Users returns every user seen by Collect or CountMessage, sorted.
func (ws *WordStats) Users() []string {
	seen := make(map[string]struct{}, len(ws.UserTotals)+len(ws.Messages))
	for u := range ws.UserTotals {
		seen[u] = struct{}{}
	}
	for u := range ws.Messages {
		seen[u] = struct{}{}
	}
	users := make([]string, 0, len(seen))
	for u := range seen {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}
