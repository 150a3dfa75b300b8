package dto

import "time"

type RecordInput struct {
	DurationMinutes int
	Day             time.Time
	ThemeID         string
}

type AchievementOutput struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Unlocked    bool
	UnlockedAt  time.Time
}

type SnapshotOutput struct {
	WeeklyMinutes  [7]int
	WeekStart      string
	TotalMinutes   int
	StreakDays     int
	SessionCount   int
	CompletedDates []string
	ThemesTried    []string
	Achievements   []AchievementOutput
}

type RecordOutput struct {
	Snapshot      SnapshotOutput
	NewlyUnlocked []AchievementOutput
}

type CalendarInput struct {
	Year  int
	Month time.Month
}

// CalendarCell is nil in CalendarOutput.Cells for padding before the first
// and after the last day of the month.
type CalendarCell struct {
	Date      string
	Day       int
	Completed bool
}

type CalendarOutput struct {
	Year  int
	Month time.Month
	Cells []*CalendarCell
}
