package models

// Question is one entry of the fixed question catalog.
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}
