package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/utils"
)

// AnswerRepository stores at most one answer per calendar day. The whole
// collection is read and rewritten on every change; concurrent writers from
// separate processes can lose updates.
type AnswerRepository struct {
	store storage.Provider
	clock Clock
}

// NewAnswerRepository returns a repository over store. A nil clock uses time.Now.
func NewAnswerRepository(store storage.Provider, clock Clock) *AnswerRepository {
	return &AnswerRepository{store: store, clock: clock}
}

// Today returns the date identifier the repository currently treats as today.
func (r *AnswerRepository) Today() string {
	return utils.Today(r.clock.now())
}

// read returns the stored collection and the raw blob. A decode failure is
// reported as ErrCorruptRecord together with the raw text.
func (r *AnswerRepository) read() ([]models.Answer, string, error) {
	raw, ok, err := r.store.Get(constants.AnswersKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read answers: %w", err)
	}
	if !ok || raw == "" {
		return []models.Answer{}, raw, nil
	}

	var answers []models.Answer
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, raw, fmt.Errorf("%w: answers: %v", ErrCorruptRecord, err)
	}
	if answers == nil {
		answers = []models.Answer{}
	}
	return answers, raw, nil
}

// CorruptAnswersKey is where an undecodable answers blob captured at unixMilli
// is kept once a write replaces it.
func CorruptAnswersKey(unixMilli int64) string {
	return fmt.Sprintf("%s.corrupt-%d", constants.AnswersKey, unixMilli)
}

// loadForWrite reads the collection for a read-modify-write. Only store
// errors propagate. A corrupt blob is copied aside and the write starts from
// an empty collection.
func (r *AnswerRepository) loadForWrite() ([]models.Answer, error) {
	answers, raw, err := r.read()
	if err == nil {
		return answers, nil
	}
	if !errors.Is(err, ErrCorruptRecord) {
		return nil, err
	}

	backupKey := CorruptAnswersKey(r.clock.now().UnixMilli())
	if serr := r.store.Set(backupKey, raw); serr != nil {
		return nil, fmt.Errorf("failed to preserve corrupt answers: %w", serr)
	}
	logger.Warn("Answers record was corrupt; starting a new collection", "error", err, "preservedAs", backupKey)
	return []models.Answer{}, nil
}

func (r *AnswerRepository) write(answers []models.Answer) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	if err := r.store.Set(constants.AnswersKey, string(data)); err != nil {
		return fmt.Errorf("failed to write answers: %w", err)
	}
	return nil
}

func withoutDate(answers []models.Answer, date string) []models.Answer {
	kept := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		if a.Date != date {
			kept = append(kept, a)
		}
	}
	return kept
}

// SaveAnswer records text as today's answer, replacing any earlier answer for
// today. The new entry goes to the end of the collection.
func (r *AnswerRepository) SaveAnswer(text string, questionID int, questionText string) error {
	now := r.clock.now()
	today := utils.Today(now)

	answers, err := r.loadForWrite()
	if err != nil {
		return err
	}

	answers = append(withoutDate(answers, today), models.Answer{
		Date:         today,
		QuestionID:   questionID,
		QuestionText: questionText,
		Answer:       text,
		CreatedAt:    now.UnixMilli(),
	})

	if err := r.write(answers); err != nil {
		return err
	}
	logger.Debug("Saved answer", "date", today, "questionId", questionID)
	return nil
}

// GetAllAnswers returns every stored answer in insertion order, or an empty
// slice if the collection is missing or unreadable.
func (r *AnswerRepository) GetAllAnswers() []models.Answer {
	answers, _, err := r.read()
	if err != nil {
		logger.Error("Error getting all answers", "error", err)
		return []models.Answer{}
	}
	return answers
}

// GetAnswer returns the answer stored for date.
func (r *AnswerRepository) GetAnswer(date string) (models.Answer, bool) {
	for _, a := range r.GetAllAnswers() {
		if a.Date == date {
			return a, true
		}
	}
	return models.Answer{}, false
}

// GetTodayAnswer returns today's answer if one was saved.
func (r *AnswerRepository) GetTodayAnswer() (models.Answer, bool) {
	return r.GetAnswer(r.Today())
}

// History returns all answers newest first.
func (r *AnswerRepository) History() []models.Answer {
	answers := r.GetAllAnswers()
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Date > answers[j].Date
	})
	return answers
}

// DeleteAnswer removes the answer for date. Deleting a date with no answer
// leaves the collection untouched.
func (r *AnswerRepository) DeleteAnswer(date string) error {
	answers, err := r.loadForWrite()
	if err != nil {
		return err
	}

	kept := withoutDate(answers, date)
	if len(kept) == len(answers) {
		logger.Debug("No answer to delete", "date", date)
		return nil
	}

	if err := r.write(kept); err != nil {
		return err
	}
	logger.Debug("Deleted answer", "date", date)
	return nil
}
