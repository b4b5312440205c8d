package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"os"
	"path/filepath"
	"transcript/internal/archive"
	"transcript/internal/models"
	"transcript/internal/providers"
	"transcript/internal/services"
	"transcript/internal/structures"

	"github.com/m-mizutani/goerr/v2"
)

const StylesheetName = "style.css"

//go:embed assets/transcript.html
var transcriptTmpl string

//go:embed assets/style.css
var defaultStylesheet []byte

var transcriptTemplate = template.Must(template.New("transcript").Parse(transcriptTmpl))

// Writer persists a rendered artifact.
type Writer interface {
	WriteFile(fileName string, data []byte) error
}

type RendererInterface interface {
	Render(channel string, result services.AggregateResult) (string, error)
	CopyStylesheet() error
}

type Renderer struct {
	conf   *structures.Config
	writer Writer
	logger providers.Logger
}

type page struct {
	Title    string
	Months   []models.MonthMarker
	Messages []messageView
	Count    int
}

// messageView carries already normalized text and labels, so both are
// trusted as HTML.
type messageView struct {
	Anchor    string
	Time      string
	Label     template.HTML
	Text      template.HTML
	Style     template.CSS
	NewMonth  bool
	MonthID   string
	MonthName string
	Gap       string
	Replies   []messageView
}

func NewRenderer(conf *structures.Config, writer Writer, logger providers.Logger) *Renderer {
	return &Renderer{
		conf:   conf,
		writer: writer,
		logger: logger,
	}
}

// Title is the document title of a channel transcript.
func (r *Renderer) Title(channel string) string {
	if r.conf.Render.Title == "" {
		return "#" + channel
	}
	return r.conf.Render.Title + " #" + channel
}

// Render writes <outputDir>/<channel>.html and returns its path.
func (r *Renderer) Render(channel string, result services.AggregateResult) (string, error) {
	p := page{
		Title:    r.Title(channel),
		Months:   result.Months,
		Messages: toViews(result.Messages),
		Count:    result.Count,
	}

	var buf bytes.Buffer
	if err := transcriptTemplate.Execute(&buf, p); err != nil {
		return "", goerr.Wrap(err, "failed to render transcript", goerr.V("channel", channel))
	}

	path := filepath.Join(r.conf.OutputDir, channel+".html")
	if err := r.writer.WriteFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	r.logger.Debugf(providers.TypeRender, "Rendered %d messages of %s to %s", len(result.Messages), channel, path)
	return path, nil
}

// CopyStylesheet places the configured stylesheet, or the built-in one, next
// to the transcripts.
func (r *Renderer) CopyStylesheet() error {
	data := defaultStylesheet
	if r.conf.Render.Stylesheet != "" {
		custom, err := os.ReadFile(r.conf.Render.Stylesheet)
		if err != nil {
			return goerr.Wrap(archive.ErrMissingInput, "failed to read stylesheet", goerr.V("path", r.conf.Render.Stylesheet), goerr.V("cause", err.Error()))
		}
		data = custom
	}
	return r.writer.WriteFile(filepath.Join(r.conf.OutputDir, StylesheetName), data)
}

func toViews(messages []*models.DisplayMessage) []messageView {
	if len(messages) == 0 {
		return nil
	}
	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageView{
			Anchor:    m.TS,
			Time:      m.FormattedTime,
			Label:     template.HTML(m.UserLabel),
			Text:      template.HTML(m.Text),
			Style:     template.CSS("background-color: " + m.Color),
			NewMonth:  m.NewMonth,
			MonthID:   m.MonthID,
			MonthName: m.MonthName,
			Gap:       m.TemporalGap,
			Replies:   toViews(m.Replies),
		})
	}
	return views
}
