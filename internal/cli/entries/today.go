package entries

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/questions"
	"github.com/julianstephens/daylog/internal/utils"
	"github.com/julianstephens/daylog/internal/validation"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	today := ctx.Answers.Today()
	question := questions.ForDate(today)

	ctx.Println(utils.FormatDisplayDate(today))
	ctx.Println()
	ctx.Printf("  %s\n\n", question.Text)

	answer, ok := ctx.Answers.GetTodayAnswer()
	if !ok {
		ctx.Println("No answer yet. Use 'daylog answer' to write one.")
		return nil
	}
	ctx.Println("Your answer:")
	for _, line := range strings.Split(answer.Answer, "\n") {
		ctx.Printf("  %s\n", line)
	}
	return nil
}

type AnswerCmd struct {
	Text string `arg:"" optional:"" help:"Answer text. Read from stdin when omitted."`
}

func (c *AnswerCmd) Run(ctx *cli.Context) error {
	text := c.Text
	if text == "" {
		data, err := io.ReadAll(ctx.In)
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}
	if err := validation.AnswerText(text); err != nil {
		return err
	}

	today := ctx.Answers.Today()
	question := questions.ForDate(today)
	_, existed := ctx.Answers.GetTodayAnswer()

	if err := ctx.Answers.SaveAnswer(text, question.ID, question.Text); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}

	if existed {
		ctx.Printf("✓ Updated answer for %s\n", utils.FormatDisplayDate(today))
	} else {
		ctx.Printf("✓ Saved answer for %s\n", utils.FormatDisplayDate(today))
	}
	return nil
}
