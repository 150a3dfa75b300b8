package domain

// Theme is an immutable ambient-sound and colour preset for a session.
type Theme struct {
	ID             string
	Name           string
	Description    string
	PrimaryColor   string
	SecondaryColor string
	SoundFileName  string
	Benefits       []string
	Icon           string
}

var catalog = []Theme{
	{
		ID:             "ocean",
		Name:           "Ocean Waves",
		Description:    "Slow surf rolling onto a quiet shore.",
		PrimaryColor:   "#1e66f5",
		SecondaryColor: "#04a5e5",
		SoundFileName:  "ocean.wav",
		Benefits:       []string{"Deepens breathing", "Eases anxiety", "Helps with sleep"},
		Icon:           "🌊",
	},
	{
		ID:             "forest",
		Name:           "Forest Walk",
		Description:    "Birdsong and wind through tall trees.",
		PrimaryColor:   "#40a02b",
		SecondaryColor: "#179299",
		SoundFileName:  "forest.wav",
		Benefits:       []string{"Restores attention", "Lowers stress", "Grounds the body"},
		Icon:           "🌲",
	},
	{
		ID:             "rain",
		Name:           "Gentle Rain",
		Description:    "Steady rainfall on a tin roof.",
		PrimaryColor:   "#7287fd",
		SecondaryColor: "#8839ef",
		SoundFileName:  "rain.wav",
		Benefits:       []string{"Masks distractions", "Improves focus", "Calms racing thoughts"},
		Icon:           "🌧️",
	},
	{
		ID:             "night",
		Name:           "Night Sky",
		Description:    "Crickets under a wide, still sky.",
		PrimaryColor:   "#1e1e2e",
		SecondaryColor: "#b4befe",
		SoundFileName:  "night.wav",
		Benefits:       []string{"Prepares for sleep", "Slows heart rate", "Quiets the mind"},
		Icon:           "🌙",
	},
	{
		ID:             "mountain",
		Name:           "Mountain Stream",
		Description:    "Clear water running over stones.",
		PrimaryColor:   "#fe640b",
		SecondaryColor: "#df8e1d",
		SoundFileName:  "mountain.wav",
		Benefits:       []string{"Builds clarity", "Encourages presence", "Refreshes energy"},
		Icon:           "🏔️",
	},
}

// Catalog returns the themes in display order. The slice is a copy.
func Catalog() []Theme {
	out := make([]Theme, len(catalog))
	for i, t := range catalog {
		out[i] = t.clone()
	}
	return out
}

// Default is the first catalog theme.
func Default() Theme {
	return catalog[0].clone()
}

// Find looks a theme up by id.
func Find(id string) (Theme, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t.clone(), true
		}
	}
	return Theme{}, false
}

// IDs lists every catalog theme id.
func IDs() []string {
	out := make([]string, len(catalog))
	for i, t := range catalog {
		out[i] = t.ID
	}
	return out
}

func (t Theme) clone() Theme {
	t.Benefits = append([]string(nil), t.Benefits...)
	return t
}
