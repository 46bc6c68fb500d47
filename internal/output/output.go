// Package output renders CLI results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
)

// Format is an output format name.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a format name other than text, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid formats: text, json, yaml)", ErrUnknownFormat, s)
	}
}

// Styles holds the text styles a Printer applies.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Good  lipgloss.Style
	Bad   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")),
		Label: r.NewStyle().Bold(true),
		Good:  r.NewStyle().Foreground(lipgloss.Color("#00ff9f")),
		Bad:   r.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
	}
}

// Printer writes results to w in one format. Colors are only emitted when w is a
// terminal that supports them.
type Printer struct {
	w      io.Writer
	format Format
	styles Styles
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer, format Format) *Printer {
	if format == "" {
		format = FormatText
	}

	return &Printer{
		w:      w,
		format: format,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Title styles a heading.
func (p *Printer) Title(s string) string {
	return p.styles.Title.Render(s)
}

// Label styles a field label.
func (p *Printer) Label(s string) string {
	return p.styles.Label.Render(s)
}

// Status styles a pass/fail line.
func (p *Printer) Status(ok bool, s string) string {
	if ok {
		return p.styles.Good.Render(s)
	}

	return p.styles.Bad.Render(s)
}

// Print writes v. In text format text is called to produce the output; a nil text
// falls back to fmt's default formatting of v.
func (p *Printer) Print(v any, text func() string) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = p.w.Write(data)

		return err
	case FormatText:
		var s string
		if text != nil {
			s = text()
		} else {
			s = fmt.Sprint(v)
		}
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		_, err := io.WriteString(p.w, s)

		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, p.format)
	}
}
