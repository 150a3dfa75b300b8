package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"serene/internal/modules/journal/domain"
	journalout "serene/internal/modules/journal/port/out"
	"serene/internal/platform/logging"
	"serene/internal/platform/markdown"
	"serene/internal/platform/slug"
)

// noteMeta is the frontmatter of a journal note.
type noteMeta struct {
	SchemaVersion   int    `yaml:"schema_version"`
	ID              string `yaml:"id"`
	Date            string `yaml:"date"`
	Mood            string `yaml:"mood"`
	ThemeID         string `yaml:"theme_id"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

// VaultEntryStore writes one markdown note per entry under
// <journal>/YYYY/MM/DD/.
type VaultEntryStore struct {
	root   string
	logger hclog.Logger
}

func NewVaultEntryStore(journalPath string, logger hclog.Logger) journalout.EntryStore {
	return &VaultEntryStore{root: journalPath, logger: logging.OrNull(logger).Named("journal-store")}
}

func (s *VaultEntryStore) Append(_ context.Context, entry domain.Entry) (string, error) {
	date := entry.Date
	dir := filepath.Join(s.root, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Short(entry.ID, 8))
	path := filepath.Join(dir, name)

	meta := noteMeta{
		SchemaVersion:   domain.SchemaVersion,
		ID:              entry.ID,
		Date:            date.Format(time.RFC3339Nano),
		Mood:            string(entry.Mood),
		ThemeID:         entry.ThemeID,
		DurationSeconds: entry.DurationSeconds,
	}
	body := fmt.Sprintf("# %s %s\n\n%s\n", entry.Mood.Symbol(), date.Format("Monday, 2 January 2006 15:04"), entry.Notes)
	rendered, err := markdown.RenderNote(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

// List reads every note under the journal root. Notes that cannot be read or
// parsed are logged and skipped; only an unreadable root is an error.
func (s *VaultEntryStore) List(_ context.Context) ([]domain.Entry, error) {
	entries := []domain.Entry{}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				if errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipDir
				}
				return err
			}
			s.logger.Warn("skipping unreadable journal path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		entry, err := readNote(path)
		if err != nil {
			s.logger.Warn("skipping journal note", "path", path, "error", err)
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list journal notes: %w", err)
	}
	return entries, nil
}

func readNote(path string) (domain.Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("read %s: %w", path, err)
	}
	meta := noteMeta{}
	body, err := markdown.ParseNote(string(raw), &meta)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("parse %s: %w", path, err)
	}
	date, err := time.Parse(time.RFC3339Nano, meta.Date)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("parse date in %s: %w", path, err)
	}
	mood, err := domain.ParseMood(meta.Mood)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("%s: %w", path, err)
	}
	return domain.Entry{
		ID:              meta.ID,
		Date:            date,
		Mood:            mood,
		Notes:           notesFromBody(body),
		ThemeID:         meta.ThemeID,
		DurationSeconds: meta.DurationSeconds,
	}, nil
}

// notesFromBody drops the generated heading line.
func notesFromBody(body string) string {
	if strings.HasPrefix(body, "# ") {
		if idx := strings.Index(body, "\n"); idx >= 0 {
			body = body[idx+1:]
		} else {
			body = ""
		}
	}
	return strings.TrimSpace(body)
}
