package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DisplayDateFormat renders a date identifier for headings, e.g. "2 January 2006, Monday"
	DisplayDateFormat = "2 January 2006, Monday"

	// ShortDateFormat renders a date identifier for list rows, e.g. "2 Jan"
	ShortDateFormat = "2 Jan"
)
