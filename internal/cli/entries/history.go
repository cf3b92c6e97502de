package entries

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/export"
	"github.com/julianstephens/daylog/internal/utils"
	"github.com/julianstephens/daylog/internal/validation"
)

type HistoryCmd struct {
	Limit int  `help:"Show at most this many answers (0 for all)." default:"0"`
	Full  bool `help:"Print full answers instead of a one-line preview."`
}

const previewWidth = 60

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	answers := ctx.Answers.History()
	if len(answers) == 0 {
		ctx.Println("No answers yet.")
		return nil
	}
	if c.Limit > 0 && len(answers) > c.Limit {
		answers = answers[:c.Limit]
	}

	for _, a := range answers {
		if c.Full {
			ctx.Printf("%s\n  %s\n", utils.FormatDisplayDate(a.Date), a.QuestionText)
			for _, line := range strings.Split(a.Answer, "\n") {
				ctx.Printf("  > %s\n", line)
			}
			ctx.Println()
			continue
		}
		ctx.Printf("%s  %-6s  %s\n", a.Date, utils.FormatShortDate(a.Date), preview(a.Answer))
	}
	return nil
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= previewWidth {
		return text
	}
	return string(runes[:previewWidth-1]) + "…"
}

type DeleteCmd struct {
	Date string `arg:"" help:"Date of the answer to delete (YYYY-MM-DD or 'today')."`
	Yes  bool   `short:"y" help:"Delete without asking for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "today" {
		date = ctx.Answers.Today()
	}
	if err := validation.Date(date); err != nil {
		return err
	}

	if _, ok := ctx.Answers.GetAnswer(date); !ok {
		ctx.Printf("No answer recorded for %s.\n", date)
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete the answer for %s?", utils.FormatDisplayDate(date)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Answers.DeleteAnswer(date); err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	ctx.Printf("✓ Deleted answer for %s\n", date)
	return nil
}

type ExportCmd struct {
	Format string `short:"f" help:"Output format: json, markdown or html." default:"markdown"`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	answers := ctx.Answers.GetAllAnswers()

	if c.Output == "" {
		return export.Write(ctx.Out, format, answers)
	}

	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, format, answers); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	ctx.Printf("✓ Exported %d answers to %s\n", len(answers), c.Output)
	return nil
}
