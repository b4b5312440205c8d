package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_PunctuationBecomesSpace(t *testing.T) {
	assert.Equal(t, []string{"hello", "", "world", ""}, Tokenize("Hello, World!"))
}

func TestTokenize_EmptyTokensKept(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, Tokenize("a  b"))
	assert.Equal(t, []string{""}, Tokenize(""))
}

func TestTokenize_OnlySingleSpaceSplits(t *testing.T) {
	assert.Equal(t, []string{"tab\tsep", "line\nbreak"}, Tokenize("tab\tsep line\nbreak"))
}

func TestWordStats_Collect(t *testing.T) {
	ws := NewWordStats()
	ws.Collect("alice", "Hi hi. Bob")
	ws.Collect("bob", "hi")

	assert.Equal(t, 3, ws.Words["hi"])
	assert.Equal(t, 1, ws.Words[""])
	assert.Equal(t, 2, ws.UserWordCount("alice", "hi"))
	assert.Equal(t, 1, ws.UserWordCount("bob", "hi"))
	assert.Equal(t, 0, ws.UserWordCount("carol", "hi"))
	assert.Equal(t, 4, ws.UserTotals["alice"])
	assert.Equal(t, 1, ws.UserTotals["bob"])
	assert.Equal(t, 5, ws.Total)
}

func TestWordStats_TotalsAgree(t *testing.T) {
	ws := NewWordStats()
	ws.Collect("alice", "one two, three")
	ws.Collect("bob", "four? five")

	sumWords := 0
	for _, c := range ws.Words {
		sumWords += c
	}
	sumUsers := 0
	for _, c := range ws.UserTotals {
		sumUsers += c
	}
	assert.Equal(t, ws.Total, sumWords)
	assert.Equal(t, ws.Total, sumUsers)
}

func TestWordStats_CountMessageAndUsers(t *testing.T) {
	ws := NewWordStats()
	ws.CountMessage("zed")
	ws.CountMessage("alice")
	ws.CountMessage("alice")
	ws.Collect("bob", "x")

	assert.Equal(t, 2, ws.Messages["alice"])
	assert.Equal(t, 3, ws.MessageTotal)
	assert.Equal(t, []string{"alice", "bob", "zed"}, ws.Users())
}

func TestRawMessage_BodyAndReply(t *testing.T) {
	text := "hello"
	m := RawMessage{TS: "1.0", Text: &text}
	assert.Equal(t, "hello", m.Body())
	assert.False(t, m.IsReply())

	m.ThreadTS = "1.0"
	assert.False(t, m.IsReply())

	m.ThreadTS = "0.5"
	assert.True(t, m.IsReply())

	assert.Equal(t, MissingText, (&RawMessage{TS: "2.0"}).Body())
}
