package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

type Mood string

const (
	MoodCalm     Mood = "calm"
	MoodHappy    Mood = "happy"
	MoodGrateful Mood = "grateful"
	MoodNeutral  Mood = "neutral"
	MoodTired    Mood = "tired"
	MoodAnxious  Mood = "anxious"
	MoodSad      Mood = "sad"
)

var moodSymbols = map[Mood]string{
	MoodCalm:     "😌",
	MoodHappy:    "😊",
	MoodGrateful: "🙏",
	MoodNeutral:  "😐",
	MoodTired:    "😴",
	MoodAnxious:  "😰",
	MoodSad:      "😢",
}

// Moods lists every mood in display order.
func Moods() []Mood {
	return []Mood{MoodCalm, MoodHappy, MoodGrateful, MoodNeutral, MoodTired, MoodAnxious, MoodSad}
}

func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := moodSymbols[m]; !ok {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

func (m Mood) Symbol() string {
	return moodSymbols[m]
}

// Entry is a saved reflection. Entries are never edited after creation.
type Entry struct {
	ID              string
	Date            time.Time
	Mood            Mood
	Notes           string
	ThemeID         string
	DurationSeconds int
}
