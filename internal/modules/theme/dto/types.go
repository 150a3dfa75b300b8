package dto

type ThemeOutput struct {
	ID             string
	Name           string
	Description    string
	PrimaryColor   string
	SecondaryColor string
	SoundFileName  string
	Benefits       []string
	Icon           string
}
