package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/colorhash"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how sweep, burn, status and version report.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

func parseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Tag prefixes a progress line.
type Tag string

const (
	TagInfo    Tag = "INFO"
	TagNotice  Tag = "NOTICE"
	TagWarning Tag = "WARNING"
	TagError   Tag = "ERROR"
	TagCaution Tag = "CAUTION"
)

var tagStyles = map[Tag]lipgloss.Style{
	TagInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
	TagNotice:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
	TagWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
	TagError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
	TagCaution: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8800")),
}

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// console prints tagged progress lines. With a structured output format the
// lines go to stderr so stdout stays machine readable.
type console struct {
	out    io.Writer
	format OutputFormat
}

func newConsole(stdout, stderr io.Writer, format OutputFormat) console {
	if format != FormatText {
		return console{out: stderr, format: format}
	}
	return console{out: stdout, format: format}
}

func (c console) tag(tag Tag, format string, args ...any) {
	label := tagStyles[tag].Render(fmt.Sprintf("[%s]", tag))
	fmt.Fprintf(c.out, "%s %s\n", label, fmt.Sprintf(format, args...))
}

func (c console) Info(format string, args ...any)    { c.tag(TagInfo, format, args...) }
func (c console) Notice(format string, args ...any)  { c.tag(TagNotice, format, args...) }
func (c console) Warning(format string, args ...any) { c.tag(TagWarning, format, args...) }
func (c console) Caution(format string, args ...any) { c.tag(TagCaution, format, args...) }
func (c console) Error(format string, args ...any)   { c.tag(TagError, format, args...) }

// boxStyle gives every box name a stable colour.
func boxStyle(name string) lipgloss.Style {
	code := colorhash.HashString(name)%216 + 16
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(code)))
}

// writeReport encodes v as JSON or YAML, or calls text for plain output.
func writeReport(w io.Writer, format OutputFormat, v any, text func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// parseKeywords accepts only the given words and reports which were present.
func parseKeywords(args []string, allowed ...string) (map[string]bool, error) {
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		word := strings.ToLower(arg)
		if !slices.Contains(allowed, word) {
			return nil, fmt.Errorf("unknown keyword %q (allowed: %s)", arg, strings.Join(allowed, ", "))
		}
		seen[word] = true
	}
	return seen, nil
}
