package out

import "context"

// KeyValueStore is the embedded persistence collaborator. SetMany writes all
// pairs or none of them.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
}

// ThemeCatalog lists the theme ids that count towards all_themes.
type ThemeCatalog interface {
	ThemeIDs(ctx context.Context) ([]string, error)
}
