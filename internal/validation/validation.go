package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/questions"
	"github.com/julianstephens/daylog/internal/utils"
)

var (
	ErrEmptyAnswer = errors.New("answer cannot be empty")
	ErrInvalidTime = errors.New("time must be HH:MM (24h)")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// AnswerText rejects answers that are blank after trimming whitespace.
func AnswerText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyAnswer
	}
	return nil
}

// Clock validates an HH:MM reminder time.
func Clock(clock string) error {
	if _, _, err := utils.ParseClock(clock); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return nil
}

// Date validates a YYYY-MM-DD date identifier.
func Date(date string) error {
	if !utils.IsValidDate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictDuplicateDate   ConflictType = "duplicate_date"
	ConflictInvalidDate     ConflictType = "invalid_date"
	ConflictEmptyAnswer     ConflictType = "empty_answer"
	ConflictUnknownQuestion ConflictType = "unknown_question"
	ConflictInvalidTime     ConflictType = "invalid_time"
)

// Conflict represents a single problem in the stored journal
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string // YYYY-MM-DD (if applicable)
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Answers checks a stored answer collection. Duplicate dates break the
// one-answer-per-day rule; a question id outside the catalog is reported but
// harmless since the text is stored alongside it.
func Answers(answers []models.Answer) Result {
	var res Result
	seen := make(map[string]int)

	for _, a := range answers {
		seen[a.Date]++
		if !utils.IsValidDate(a.Date) {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("answer has invalid date %q", a.Date),
				Date:        a.Date,
			})
		}
		if strings.TrimSpace(a.Answer) == "" {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictEmptyAnswer,
				Description: fmt.Sprintf("answer for %s is empty", a.Date),
				Date:        a.Date,
			})
		}
		if _, ok := questions.ByID(a.QuestionID); !ok {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictUnknownQuestion,
				Description: fmt.Sprintf("answer for %s references unknown question %d", a.Date, a.QuestionID),
				Date:        a.Date,
			})
		}
	}

	for _, a := range answers {
		if n := seen[a.Date]; n > 1 {
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:        ConflictDuplicateDate,
				Description: fmt.Sprintf("%d answers stored for %s", n, a.Date),
				Date:        a.Date,
			})
			seen[a.Date] = 0
		}
	}

	return res
}

// Settings checks the stored notification settings.
func Settings(s models.NotificationSettings) Result {
	var res Result
	if err := Clock(s.Time); err != nil {
		res.Conflicts = append(res.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("reminder time %q is not HH:MM", s.Time),
		})
	}
	return res
}
