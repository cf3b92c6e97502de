package models

// Answer is the single journal entry recorded for one calendar day.
type Answer struct {
	Date         string `json:"date"`         // YYYY-MM-DD in local time, unique per answer
	QuestionID   int    `json:"questionId"`   // id of the catalog question that was answered
	QuestionText string `json:"questionText"` // question text as shown when answering
	Answer       string `json:"answer"`
	CreatedAt    int64  `json:"createdAt"` // Unix milliseconds at capture time
}
