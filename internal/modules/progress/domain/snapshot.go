package domain

import (
	"sort"
	"time"
)

// Snapshot is the aggregate progress state. Values are treated as immutable
// once published; mutations work on a Clone.
type Snapshot struct {
	WeeklyMinutes  [7]int        `json:"weekly_minutes"`
	WeekStart      Day           `json:"week_start"`
	TotalMinutes   int           `json:"total_minutes"`
	StreakDays     int           `json:"streak_days"`
	SessionCount   int           `json:"session_count"`
	CompletedDates []Day         `json:"completed_dates"`
	ThemesTried    []string      `json:"themes_tried"`
	Achievements   []Achievement `json:"achievements"`
}

// Completion describes one finished session.
type Completion struct {
	DurationMinutes int
	Day             Day
	ThemeID         string
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		CompletedDates: []Day{},
		ThemesTried:    []string{},
		Achievements:   DefaultAchievements(),
	}
}

func (s Snapshot) Clone() Snapshot {
	out := s
	out.CompletedDates = append([]Day{}, s.CompletedDates...)
	out.ThemesTried = append([]string{}, s.ThemesTried...)
	out.Achievements = append([]Achievement{}, s.Achievements...)
	return out
}

// Normalize restores the set invariants (sorted, unique) after decoding.
func (s *Snapshot) Normalize() {
	sort.Slice(s.CompletedDates, func(i, j int) bool { return s.CompletedDates[i].Before(s.CompletedDates[j]) })
	dates := s.CompletedDates[:0]
	for i, d := range s.CompletedDates {
		if d.IsZero() || (i > 0 && d == s.CompletedDates[i-1]) {
			continue
		}
		dates = append(dates, d)
	}
	s.CompletedDates = dates

	sort.Strings(s.ThemesTried)
	themes := s.ThemesTried[:0]
	for i, id := range s.ThemesTried {
		if id == "" || (i > 0 && id == s.ThemesTried[i-1]) {
			continue
		}
		themes = append(themes, id)
	}
	s.ThemesTried = themes

	if len(s.Achievements) == 0 {
		s.Achievements = DefaultAchievements()
	}
	for i, v := range s.WeeklyMinutes {
		if v < 0 {
			s.WeeklyMinutes[i] = 0
		}
	}
}

func (s Snapshot) HasCompleted(d Day) bool {
	i := s.dateIndex(d)
	return i < len(s.CompletedDates) && s.CompletedDates[i] == d
}

// LatestCompleted is the most recent completed date.
func (s Snapshot) LatestCompleted() (Day, bool) {
	if len(s.CompletedDates) == 0 {
		return Day{}, false
	}
	return s.CompletedDates[len(s.CompletedDates)-1], true
}

func (s Snapshot) TriedTheme(id string) bool {
	i := sort.SearchStrings(s.ThemesTried, id)
	return i < len(s.ThemesTried) && s.ThemesTried[i] == id
}

func (s Snapshot) Achievement(id string) (Achievement, bool) {
	for _, a := range s.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// AsOf returns the snapshot as seen on today: when today falls in a later week
// than WeekStart the weekly buckets are empty. s itself is not modified.
func (s Snapshot) AsOf(today Day) Snapshot {
	next := s.Clone()
	if !next.WeekStart.IsZero() {
		next.rollWeek(today.WeekStart())
	}
	return next
}

func (s *Snapshot) rollWeek(week Day) {
	switch {
	case s.WeekStart.IsZero():
		s.WeekStart = week
	case s.WeekStart.Before(week):
		s.WeekStart = week
		s.WeeklyMinutes = [7]int{}
	}
}

// WithCompletion returns the snapshot that results from recording c, plus the
// achievements that c unlocked. s itself is not modified.
//
// Streak rule: a completion on the day after the latest completed date extends
// the streak, one on the latest date leaves it unchanged, anything else
// restarts it at 1.
func (s Snapshot) WithCompletion(c Completion, themeIDs []string, at time.Time) (Snapshot, []Achievement) {
	next := s.Clone()
	minutes := c.DurationMinutes
	if minutes < 0 {
		minutes = 0
	}

	week := c.Day.WeekStart()
	next.rollWeek(week)
	if next.WeekStart == week {
		next.WeeklyMinutes[c.Day.Weekday()] += minutes
	}
	next.TotalMinutes += minutes
	next.SessionCount++

	latest, ok := next.LatestCompleted()
	switch {
	case ok && c.Day == latest:
		// duplicate same-day session
	case ok && c.Day == latest.AddDays(1):
		next.StreakDays++
	default:
		next.StreakDays = 1
	}

	next.insertDate(c.Day)
	if c.ThemeID != "" {
		next.insertTheme(c.ThemeID)
	}
	unlocked := next.evaluateAchievements(themeIDs, at)
	return next, unlocked
}

func (s Snapshot) dateIndex(d Day) int {
	return sort.Search(len(s.CompletedDates), func(i int) bool {
		return !s.CompletedDates[i].Before(d)
	})
}

func (s *Snapshot) insertDate(d Day) {
	i := s.dateIndex(d)
	if i < len(s.CompletedDates) && s.CompletedDates[i] == d {
		return
	}
	s.CompletedDates = append(s.CompletedDates, Day{})
	copy(s.CompletedDates[i+1:], s.CompletedDates[i:])
	s.CompletedDates[i] = d
}

func (s *Snapshot) insertTheme(id string) {
	i := sort.SearchStrings(s.ThemesTried, id)
	if i < len(s.ThemesTried) && s.ThemesTried[i] == id {
		return
	}
	s.ThemesTried = append(s.ThemesTried, "")
	copy(s.ThemesTried[i+1:], s.ThemesTried[i:])
	s.ThemesTried[i] = id
}
