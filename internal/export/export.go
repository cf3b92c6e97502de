// Package export renders the journal as JSON, Markdown or a standalone HTML page.
package export

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var sanitizer = bluemonday.UGCPolicy()

// ParseFormat maps a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want json, markdown or html)", s)
	}
}

// Write renders answers to w, oldest first.
func Write(w io.Writer, format Format, answers []models.Answer) error {
	sorted := make([]models.Answer, len(answers))
	copy(sorted, answers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	switch format {
	case FormatJSON:
		return writeJSON(w, sorted)
	case FormatMarkdown:
		return writeMarkdown(w, sorted)
	case FormatHTML:
		return writeHTML(w, sorted)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeJSON(w io.Writer, answers []models.Answer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(answers)
}

func writeMarkdown(w io.Writer, answers []models.Answer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s journal\n", constants.AppName)
	if len(answers) == 0 {
		b.WriteString("\n_No answers yet._\n")
	}
	for _, a := range answers {
		fmt.Fprintf(&b, "\n## %s\n\n", utils.FormatDisplayDate(a.Date))
		fmt.Fprintf(&b, "**%s**\n\n", a.QuestionText)
		for _, line := range strings.Split(strings.TrimRight(a.Answer, "\n"), "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeHTML keeps simple user formatting in answers but strips anything the
// UGC policy does not allow.
func writeHTML(w io.Writer, answers []models.Answer) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s journal</title>\n</head>\n<body>\n", html.EscapeString(constants.AppName))
	fmt.Fprintf(&b, "<h1>%s journal</h1>\n", html.EscapeString(constants.AppName))

	for _, a := range answers {
		b.WriteString("<article>\n")
		fmt.Fprintf(&b, "<h2><time datetime=\"%s\">%s</time></h2>\n",
			html.EscapeString(a.Date), html.EscapeString(utils.FormatDisplayDate(a.Date)))
		fmt.Fprintf(&b, "<h3>%s</h3>\n", html.EscapeString(a.QuestionText))
		body := strings.ReplaceAll(a.Answer, "\n", "<br>")
		fmt.Fprintf(&b, "<p>%s</p>\n", sanitizer.Sanitize(body))
		b.WriteString("</article>\n")
	}

	b.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
