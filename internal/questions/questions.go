// Package questions holds the fixed question catalog and picks the question of the day.
package questions

import (
	"time"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/models"
)

var catalog = []models.Question{
	{ID: 1, Text: "What made you smile today?"},
	{ID: 2, Text: "What is one thing you learned today?"},
	{ID: 3, Text: "Who did you feel grateful for today, and why?"},
	{ID: 4, Text: "What was the hardest moment of your day?"},
	{ID: 5, Text: "What would you do differently if you could repeat today?"},
	{ID: 6, Text: "What small win are you proud of?"},
	{ID: 7, Text: "What drained your energy today?"},
	{ID: 8, Text: "What gave you energy today?"},
	{ID: 9, Text: "What are you looking forward to tomorrow?"},
	{ID: 10, Text: "What is something you noticed today that you usually overlook?"},
	{ID: 11, Text: "How did you take care of yourself today?"},
	{ID: 12, Text: "What conversation stayed with you today?"},
	{ID: 13, Text: "What did you spend too much time thinking about?"},
	{ID: 14, Text: "Which decision today are you most sure about?"},
	{ID: 15, Text: "What surprised you today?"},
	{ID: 16, Text: "What is one thing you want to remember about today?"},
	{ID: 17, Text: "What did you do today that your past self would be happy about?"},
	{ID: 18, Text: "What are you worried about right now?"},
	{ID: 19, Text: "What made you laugh today?"},
	{ID: 20, Text: "How would you describe today in three words?"},
	{ID: 21, Text: "What did you create, fix, or finish today?"},
	{ID: 22, Text: "Who would you like to thank, and for what?"},
	{ID: 23, Text: "What habit helped you today?"},
	{ID: 24, Text: "What did you avoid today, and why?"},
	{ID: 25, Text: "Where did you feel most at ease today?"},
	{ID: 26, Text: "What question is on your mind tonight?"},
	{ID: 27, Text: "What kindness did you give or receive today?"},
	{ID: 28, Text: "What would make tomorrow a good day?"},
	{ID: 29, Text: "What did your body need today?"},
	{ID: 30, Text: "What story from today would you tell a friend?"},
}

// All returns a copy of the catalog in id order.
func All() []models.Question {
	out := make([]models.Question, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a catalog question.
func ByID(id int) (models.Question, bool) {
	for _, q := range catalog {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// ForDate returns the question shown on the given date identifier. Every date
// maps to one question and consecutive dates walk the catalog in order.
// Unparsable dates get the first question.
func ForDate(date string) models.Question {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return catalog[0]
	}
	days := t.Unix() / (24 * 60 * 60)
	idx := int(days % int64(len(catalog)))
	if idx < 0 {
		idx += len(catalog)
	}
	return catalog[idx]
}
