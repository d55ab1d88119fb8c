// Package report renders the practice history as Markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/stats"
)

// Format selects the output encoding.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts md, markdown or html.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown report format %q: want md or html", s)
	}
}

// Options controls report content.
type Options struct {
	Title    string
	Today    string
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "TOEIC Practice History"
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Markdown writes rec as a Markdown document: totals first, then one
// table per day in ascending date order.
func Markdown(w io.Writer, rec history.Record, opts Options) error {
	opts = opts.withDefaults()
	totals := stats.Compute(rec, opts.Today)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", opts.Title)
	fmt.Fprintf(&b, "- Questions practiced: %d\n", totals.TotalPracticed)
	fmt.Fprintf(&b, "- Accuracy: %d%%\n", totals.Accuracy)
	fmt.Fprintf(&b, "- Streak: %d day(s)\n", totals.StreakDays)

	dates := rec.Dates()
	if len(dates) == 0 {
		b.WriteString("\nNo practice recorded yet.\n")
	}

	for _, date := range dates {
		lines := stats.DayReview(rec, date)
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", date)
		b.WriteString("| Time | Part | Score |\n")
		b.WriteString("|------|------|-------|\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "| %s | %s | %d/%d (%d%%) |\n",
				l.Time.In(opts.Location).Format("15:04"),
				l.PartName,
				l.Correct, l.Total, history.Percent(l.Correct, l.Total))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HTML writes rec as a standalone HTML page converted from the Markdown report.
func HTML(w io.Writer, rec history.Record, opts Options) error {
	opts = opts.withDefaults()

	var src bytes.Buffer
	if err := Markdown(&src, rec, opts); err != nil {
		return err
	}

	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	_, err := fmt.Fprintf(w, htmlPage, opts.Title, body.String())
	return err
}

// Write renders rec in format.
func Write(w io.Writer, format Format, rec history.Record, opts Options) error {
	switch format {
	case FormatHTML:
		return HTML(w, rec, opts)
	case FormatMarkdown:
		return Markdown(w, rec, opts)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; }
</style>
</head>
<body>
%s</body>
</html>
`
