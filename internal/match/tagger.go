package match

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"showtag/internal/catalog"
	"showtag/internal/logging"
)

// GenreStore persists a single item's genre field. Write failures are fatal
// for that item only; the run continues and reports counts.
type GenreStore interface {
	UpdateGenre(ctx context.Context, id int64, genre string) error
}

// AppendGenre adds tag to a semicolon-delimited genre field. The existing
// genres are treated as a set: if the tag is already present the field is
// returned unchanged and changed is false. Otherwise the tag is added and
// the set is rejoined sorted, so repeated tagging is idempotent and the
// field stays in a canonical form.
func AppendGenre(genre, tag string) (updated string, changed bool) {
	set := make(map[string]struct{})
	for _, g := range strings.Split(genre, ";") {
		if g = strings.TrimSpace(g); g != "" {
			set[g] = struct{}{}
		}
	}
	if _, ok := set[tag]; ok {
		return genre, false
	}
	set[tag] = struct{}{}
	genres := make([]string, 0, len(set))
	for g := range set {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return strings.Join(genres, "; "), true
}

// PreviewItem records one genre change, either applied or pending in a dry
// run.
type PreviewItem struct {
	ID       int64  `json:"id"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	NewGenre string `json:"new_genre"`
}

// TagResult summarizes one tagging pass.
type TagResult struct {
	Tagged  int
	Skipped int
	Failed  int
	Preview []PreviewItem
}

// Tagger applies the configured genre tag to matched catalog items.
type Tagger struct {
	store  GenreStore
	tag    string
	dryRun bool
	logger *slog.Logger
}

// NewTagger returns a Tagger writing through store. In dry-run mode no
// writes happen. The result always carries a preview of the changes, so a
// real run leaves the same record a dry run shows beforehand.
func NewTagger(store GenreStore, tag string, dryRun bool, logger *slog.Logger) *Tagger {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Tagger{store: store, tag: tag, dryRun: dryRun, logger: logger}
}

// Apply tags every item that does not already carry the tag. Items already
// tagged are skipped, so running the same match set twice tags nothing a
// second time.
func (t *Tagger) Apply(ctx context.Context, items []catalog.Item) (TagResult, error) {
	var result TagResult
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		updated, changed := AppendGenre(item.Genre, t.tag)
		if !changed {
			result.Skipped++
			continue
		}
		preview := PreviewItem{
			ID:       item.ID,
			Artist:   item.Artist,
			Title:    item.Title,
			Genre:    item.Genre,
			NewGenre: updated,
		}
		if t.dryRun {
			result.Tagged++
			result.Preview = append(result.Preview, preview)
			continue
		}
		if err := t.store.UpdateGenre(ctx, item.ID, updated); err != nil {
			t.logger.Warn("genre update failed",
				logging.Int64("item_id", item.ID),
				logging.String("artist", item.Artist),
				logging.String("title", item.Title),
				logging.Error(err))
			result.Failed++
			continue
		}
		t.logger.Debug("tagged item",
			logging.Int64("item_id", item.ID),
			logging.String("artist", item.Artist),
			logging.String("title", item.Title))
		result.Tagged++
		result.Preview = append(result.Preview, preview)
	}
	return result, nil
}
