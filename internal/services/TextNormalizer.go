package services

import (
	"html"
	"strings"
	"transcript/internal/providers"
)

const (
	codeFence         = "```"
	mentionTraceLimit = 5
)

// literalReplacer covers the plain-text fixups: typographic apostrophes and
// the two-character "\n" escape some exports embed.
var literalReplacer = strings.NewReplacer("’", "'", `\n`, "<br>")

var linkSchemes = []string{"http://", "https://", "mailto:"}

type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentCode
	SegmentMention
	SegmentLink
)

// Segment is one piece of tokenized message text. Text holds the literal
// text, the mentioned user id, or the link URL depending on Kind.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Label    string
	Children []Segment
}

// Tokenize splits raw text into literal, code, mention and link segments in
// one forward scan. Fences pair left to right; an unpaired fence and any
// angle-bracket token without a closing '>' stay literal. A literal '<' right
// before a mention is emitted as "&lt;" by Normalize so "<<@U1>>" does not
// turn into a new mention token once the name is spliced in.
func Tokenize(raw string) []Segment {
	var segs []Segment
	pos := 0
	for pos < len(raw) {
		open := strings.Index(raw[pos:], codeFence)
		if open < 0 {
			break
		}
		open += pos
		closeAt := strings.Index(raw[open+len(codeFence):], codeFence)
		if closeAt < 0 {
			break
		}
		closeAt += open + len(codeFence)

		segs = appendInline(segs, raw[pos:open])
		segs = append(segs, Segment{
			Kind:     SegmentCode,
			Children: appendInline(nil, raw[open+len(codeFence):closeAt]),
		})
		pos = closeAt + len(codeFence)
	}
	return appendInline(segs, raw[pos:])
}

func appendInline(segs []Segment, s string) []Segment {
	literalStart := 0
	i := 0
	for i < len(s) {
		k := strings.IndexByte(s[i:], '<')
		if k < 0 {
			break
		}
		k += i
		body := s[k+1:]

		kind, ok := tokenKind(body)
		if !ok {
			i = k + 1
			continue
		}
		end := strings.IndexByte(body, '>')
		if end < 0 {
			// nothing after this point can close a token
			break
		}
		if inner := strings.IndexByte(body[:end], '<'); inner >= 0 {
			i = k + 1 + inner
			continue
		}

		if literalStart < k {
			segs = append(segs, Segment{Kind: SegmentLiteral, Text: s[literalStart:k]})
		}
		segs = append(segs, newToken(kind, body[:end]))
		i = k + 1 + end + 1
		literalStart = i
	}
	if literalStart < len(s) {
		segs = append(segs, Segment{Kind: SegmentLiteral, Text: s[literalStart:]})
	}
	return segs
}

func tokenKind(body string) (SegmentKind, bool) {
	if strings.HasPrefix(body, "@") {
		return SegmentMention, true
	}
	for _, scheme := range linkSchemes {
		if strings.HasPrefix(body, scheme) {
			return SegmentLink, true
		}
	}
	return SegmentLiteral, false
}

func newToken(kind SegmentKind, body string) Segment {
	// the URL or id never contains '|', the display text may
	target, label, _ := strings.Cut(body, "|")
	if kind == SegmentMention {
		return Segment{Kind: SegmentMention, Text: strings.TrimPrefix(target, "@"), Label: label}
	}
	if label == "" {
		label = target
	}
	return Segment{Kind: SegmentLink, Text: target, Label: label}
}

type TextNormalizerInterface interface {
	Normalize(raw string) string
}

type TextNormalizer struct {
	directory UserDirectoryInterface
	logger    providers.Logger
}

func NewTextNormalizer(directory UserDirectoryInterface, logger providers.Logger) *TextNormalizer {
	return &TextNormalizer{
		directory: directory,
		logger:    logger,
	}
}

// Normalize turns raw export text into display markup.
func (n *TextNormalizer) Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	mentions := n.emit(&b, Tokenize(raw))
	if mentions > mentionTraceLimit {
		n.logger.Debugf(providers.TypeNormalize, "Replaced %d mentions in one message: %q", mentions, raw)
	}
	return b.String()
}

func (n *TextNormalizer) emit(b *strings.Builder, segs []Segment) int {
	mentions := 0
	for i, seg := range segs {
		switch seg.Kind {
		case SegmentLiteral:
			text := literalReplacer.Replace(seg.Text)
			// "<" followed by "@name" would read as a mention token on a second pass
			if i+1 < len(segs) && segs[i+1].Kind == SegmentMention && strings.HasSuffix(text, "<") {
				text = strings.TrimSuffix(text, "<") + "&lt;"
			}
			b.WriteString(text)
		case SegmentCode:
			b.WriteString("<pre>")
			mentions += n.emit(b, seg.Children)
			b.WriteString("</pre>")
		case SegmentMention:
			mentions++
			name := UnknownName
			if u, ok := n.directory.Lookup(seg.Text); ok {
				name = u.Name
			}
			b.WriteString("@")
			b.WriteString(literalReplacer.Replace(html.EscapeString(name)))
		case SegmentLink:
			b.WriteString(`<a href="`)
			b.WriteString(strings.ReplaceAll(literalReplacer.Replace(seg.Text), `"`, "%22"))
			b.WriteString(`">`)
			b.WriteString(literalReplacer.Replace(seg.Label))
			b.WriteString("</a>")
		}
	}
	return mentions
}
