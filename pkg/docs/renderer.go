package docs

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// Renderer formats topic content for terminal display.
type Renderer interface {
	Render(content string) string
}

// NewRenderer picks the glamour renderer on interactive terminals and
// the plain renderer when output is piped.
func NewRenderer() Renderer {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return NewGlamourRenderer()
	}
	return &PlainRenderer{}
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string) string {
	return content
}

// GlamourRenderer renders markdown with terminal styling.
type GlamourRenderer struct {
	Style string // "dark", "light", "notty", "auto", or a style file path
	Width int    // 0 = auto-detect
}

// NewGlamourRenderer creates a markdown renderer with auto-detected
// style and width.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output, returning the
// raw content when rendering fails.
func (r *GlamourRenderer) Render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
