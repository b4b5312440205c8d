package services

import (
	"fmt"
	"strings"
	"testing"
	"transcript/internal/models"
	"transcript/internal/structures"
	"transcript/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer() (*TextNormalizer, *testutil.MockLogger) {
	d, _ := newTestDirectory(&structures.Config{},
		models.User{ID: "U1", Name: "alice"},
		models.User{ID: "U2", Name: "bob"},
	)
	logger := &testutil.MockLogger{}
	return NewTextNormalizer(d, logger), logger
}

func TestNormalize_Mentions(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, "hello @alice and @bob", n.Normalize("hello <@U1> and <@U2>"))
	assert.Equal(t, "who is @???", n.Normalize("who is <@U404>"))
	assert.Equal(t, "@alice", n.Normalize("<@U1|ally>"))
}

func TestNormalize_BracketedMentionStaysStable(t *testing.T) {
	n, _ := newTestNormalizer()

	once := n.Normalize("<<@U1>>")
	assert.Equal(t, "&lt;@alice>", once)
	assert.Equal(t, once, n.Normalize(once))

	inCode := n.Normalize("```<<@U2>>```")
	assert.Equal(t, "<pre>&lt;@bob></pre>", inCode)
}

func TestNormalize_MentionNameEscaped(t *testing.T) {
	d, _ := newTestDirectory(&structures.Config{}, models.User{ID: "U3", Name: "a<b>&c"})
	n := NewTextNormalizer(d, &testutil.MockLogger{})

	once := n.Normalize("hi <@U3>")
	assert.Equal(t, "hi @a&lt;b&gt;&amp;c", once)
	assert.Equal(t, once, n.Normalize(once))
}

func TestNormalize_Links(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, `see <a href="https://example.com">https://example.com</a>`,
		n.Normalize("see <https://example.com>"))
	assert.Equal(t, `<a href="http://x.io/a?b=1&amp;c=2">the docs</a>`,
		n.Normalize("<http://x.io/a?b=1&amp;c=2|the docs>"))
	assert.Equal(t, `<a href="mailto:a@b.c">a@b.c</a>`, n.Normalize("<mailto:a@b.c|a@b.c>"))
}

func TestNormalize_LinkSplitsOnFirstPipe(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, `<a href="http://a.b">x|y</a>`, n.Normalize("<http://a.b|x|y>"))
}

func TestNormalize_CodeBlocks(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, "<pre>a</pre> mid <pre>b</pre>", n.Normalize("```a``` mid ```b```"))
	assert.Equal(t, "x <pre>line1\nline2</pre> y", n.Normalize("x ```line1\nline2``` y"))
	assert.Equal(t, "<pre>ping @alice</pre>", n.Normalize("```ping <@U1>```"))
}

func TestNormalize_UnpairedFenceStaysLiteral(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, "<pre>a</pre> and ```b", n.Normalize("```a``` and ```b"))
}

func TestNormalize_UnterminatedTokens(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, "broken <@U1 mention", n.Normalize("broken <@U1 mention"))
	assert.Equal(t, "broken <https://x.y link", n.Normalize("broken <https://x.y link"))
	assert.Equal(t, "<@U1 then @bob", n.Normalize("<@U1 then <@U2>"))
}

func TestNormalize_OtherAngleTokensUntouched(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, "<!here> look &lt;3", n.Normalize("<!here> look &lt;3"))
}

func TestNormalize_QuotesAndNewlineEscapes(t *testing.T) {
	n, _ := newTestNormalizer()

	assert.Equal(t, "it's<br>next", n.Normalize(`it’s\nnext`))
	assert.Equal(t, "real\nnewline", n.Normalize("real\nnewline"))
}

func TestNormalize_Idempotent(t *testing.T) {
	n, _ := newTestNormalizer()

	inputs := []string{
		"hello <@U1>, see <https://example.com|docs> ```code <@U2>``` it’s\\nfine",
		"<@U404> <http://a.b> <!channel>",
		"plain text",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
	}
}

func TestNormalize_ManyMentionsTraced(t *testing.T) {
	n, logger := newTestNormalizer()

	n.Normalize(strings.Repeat("<@U1> ", 5))
	assert.Empty(t, logger.Logs)

	n.Normalize(strings.Repeat("<@U1> ", 6))
	require.Len(t, logger.Logs, 1)
	assert.Equal(t, "debug", logger.Logs[0].Level)
}

func TestNormalize_HundredsOfTokens(t *testing.T) {
	n, _ := newTestNormalizer()

	out := n.Normalize(strings.Repeat("<@U2>", 150) + strings.Repeat("<http://a.b>", 150))
	assert.Equal(t, 150, strings.Count(out, "@bob"))
	assert.Equal(t, 150, strings.Count(out, `<a href="http://a.b">`))
	assert.NotContains(t, out, "<@")
}

func TestTokenize_Segments(t *testing.T) {
	segs := Tokenize("hi <@U1>```x <http://a.b|b>``` end")

	require.Len(t, segs, 4)
	assert.Equal(t, Segment{Kind: SegmentLiteral, Text: "hi "}, segs[0])
	assert.Equal(t, Segment{Kind: SegmentMention, Text: "U1"}, segs[1])
	assert.Equal(t, SegmentCode, segs[2].Kind)
	assert.Equal(t, []Segment{
		{Kind: SegmentLiteral, Text: "x "},
		{Kind: SegmentLink, Text: "http://a.b", Label: "b"},
	}, segs[2].Children)
	assert.Equal(t, Segment{Kind: SegmentLiteral, Text: " end"}, segs[3])
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

// BenchmarkNormalize measures a message dense with tokens.
func BenchmarkNormalize(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("tokens=%d", n), func(b *testing.B) {
			norm, _ := newTestNormalizer()
			raw := strings.Repeat("see <@U1> at <https://example.com|example> ", n)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				norm.Normalize(raw)
			}
		})
	}
}
