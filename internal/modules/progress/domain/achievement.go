package domain

import "time"

const (
	AchievementFirstSession = "first_session"
	AchievementStreak3      = "streak_3"
	AchievementTenHours     = "ten_hours"
	AchievementAllThemes    = "all_themes"
)

// Achievement is a badge that unlocks once and never locks again.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Unlocked    bool      `json:"unlocked"`
	UnlockedAt  time.Time `json:"unlocked_at,omitempty"`
}

type rule struct {
	badge  Achievement
	earned func(s Snapshot, themeIDs []string) bool
}

var rules = []rule{
	{
		badge: Achievement{ID: AchievementFirstSession, Title: "First Breath", Description: "Complete your first session", Icon: "🌱"},
		earned: func(s Snapshot, _ []string) bool {
			return s.SessionCount >= 1
		},
	},
	{
		badge: Achievement{ID: AchievementStreak3, Title: "Three Day Streak", Description: "Meditate three days in a row", Icon: "🔥"},
		earned: func(s Snapshot, _ []string) bool {
			return s.StreakDays >= 3
		},
	},
	{
		badge: Achievement{ID: AchievementTenHours, Title: "Ten Hours", Description: "Meditate for ten hours in total", Icon: "⏳"},
		earned: func(s Snapshot, _ []string) bool {
			return s.TotalMinutes >= 600
		},
	},
	{
		badge: Achievement{ID: AchievementAllThemes, Title: "Explorer", Description: "Complete a session with every theme", Icon: "🧭"},
		earned: func(s Snapshot, themeIDs []string) bool {
			if len(themeIDs) == 0 {
				return false
			}
			for _, id := range themeIDs {
				if !s.TriedTheme(id) {
					return false
				}
			}
			return true
		},
	},
}

// DefaultAchievements lists every achievement, all locked.
func DefaultAchievements() []Achievement {
	out := make([]Achievement, len(rules))
	for i, r := range rules {
		out[i] = r.badge
	}
	return out
}

// evaluateAchievements rebuilds the achievement list in rule order. Stored
// unlocks are carried over untouched; ids no rule knows about are kept at the
// end. It returns the achievements unlocked by this evaluation.
func (s *Snapshot) evaluateAchievements(themeIDs []string, at time.Time) []Achievement {
	existing := make(map[string]Achievement, len(s.Achievements))
	for _, a := range s.Achievements {
		existing[a.ID] = a
	}

	next := make([]Achievement, 0, len(rules)+len(s.Achievements))
	var unlocked []Achievement
	known := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		known[r.badge.ID] = struct{}{}
		current := r.badge
		if prev, ok := existing[r.badge.ID]; ok && prev.Unlocked {
			current.Unlocked = true
			current.UnlockedAt = prev.UnlockedAt
		}
		if !current.Unlocked && r.earned(*s, themeIDs) {
			current.Unlocked = true
			current.UnlockedAt = at
			unlocked = append(unlocked, current)
		}
		next = append(next, current)
	}
	for _, a := range s.Achievements {
		if _, ok := known[a.ID]; !ok {
			next = append(next, a)
		}
	}
	s.Achievements = next
	return unlocked
}
