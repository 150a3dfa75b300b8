package dto

import "time"

type AddEntryInput struct {
	Mood            string
	Notes           string
	ThemeID         string
	DurationSeconds int
}

type EntryOutput struct {
	ID              string
	Date            time.Time
	Mood            string
	MoodSymbol      string
	Notes           string
	ThemeID         string
	DurationSeconds int
}
