package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"chronicle/internal/modules/session/domain"
	sessionout "chronicle/internal/modules/session/port/out"
	"chronicle/internal/platform/locale"
	"chronicle/internal/platform/markdown"
	"chronicle/internal/platform/slug"
)

// MarkdownExporter writes a campaign as a folder of notes: one file per
// session plus a roster. Text outside the roster's managed block survives
// re-export, so the roster can be annotated by hand.
type MarkdownExporter struct{}

func NewMarkdownExporter() sessionout.TimelineExporter {
	return MarkdownExporter{}
}

type sessionMeta struct {
	SchemaVersion int      `yaml:"schema_version"`
	ID            string   `yaml:"id"`
	Campaign      string   `yaml:"campaign"`
	Date          string   `yaml:"date"`
	Title         string   `yaml:"title"`
	Characters    []string `yaml:"characters"`
	Translations  []string `yaml:"translations,omitempty"`
	HasImage      bool     `yaml:"has_image"`
}

func (MarkdownExporter) Export(_ context.Context, dir string, snapshot domain.Snapshot) ([]string, error) {
	root := filepath.Join(dir, slug.Make(snapshot.CampaignName))
	sessionsDir := filepath.Join(root, "sessions")
	if err := os.MkdirAll(sessionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	written := make([]string, 0, len(snapshot.Sessions)+1)
	used := map[string]int{}
	for _, session := range snapshot.Sessions {
		name := fmt.Sprintf("%s-%s", datePrefix(session.Date), slug.Make(session.Title))
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		path := filepath.Join(sessionsDir, name+".md")
		if err := writeSession(path, snapshot, session); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	rosterPath := filepath.Join(root, "roster.md")
	if err := writeRoster(rosterPath, snapshot); err != nil {
		return written, err
	}
	return append(written, rosterPath), nil
}

func writeSession(path string, snapshot domain.Snapshot, session domain.Session) error {
	langs := make([]string, 0, len(session.Translations))
	for lang := range session.Translations {
		langs = append(langs, string(lang))
	}
	slices.Sort(langs)

	meta := sessionMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            session.ID,
		Campaign:      snapshot.CampaignName,
		Date:          session.Date,
		Title:         session.Title,
		Characters:    snapshot.CastNames(session),
		Translations:  langs,
		HasImage:      session.ImageURL != "",
	}

	var body strings.Builder
	fmt.Fprintf(&body, "# %s\n\n", session.Title)
	if session.Story != "" {
		body.WriteString(session.Story + "\n\n")
	}
	for _, lang := range langs {
		fmt.Fprintf(&body, "## Translation (%s)\n\n%s\n\n", lang, session.Translations[locale.Language(lang)])
	}
	fmt.Fprintf(&body, "## Notes\n\n%s\n", session.RawNotes)

	rendered, err := markdown.RenderFrontmatter(meta, body.String())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write session note: %w", err)
	}
	return nil
}

func writeRoster(path string, snapshot domain.Snapshot) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read roster: %w", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(existing))
	if err != nil {
		return fmt.Errorf("parse roster: %w", err)
	}
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("# %s\n\n%s\n", snapshot.CampaignName, snapshot.Description)
	}
	meta["campaign"] = snapshot.CampaignName
	meta["campaign_id"] = snapshot.CampaignID
	meta["characters"] = len(snapshot.Roster)

	var block strings.Builder
	for i, r := range snapshot.Roster {
		if i > 0 {
			block.WriteString("\n")
		}
		fmt.Fprintf(&block, "- **%s**", r.Name)
		if kind := strings.TrimSpace(r.Race + " " + r.Class); kind != "" {
			fmt.Fprintf(&block, " (%s)", kind)
		}
		if r.Description != "" {
			fmt.Fprintf(&block, ": %s", r.Description)
		}
	}
	body = markdown.ReplaceManagedBlock(body, markdown.RosterStart, markdown.RosterEnd, block.String())

	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	return nil
}

func datePrefix(raw string) string {
	if t, ok := domain.ParseDate(raw); ok {
		return t.Format("2006-01-02")
	}
	return "undated"
}
