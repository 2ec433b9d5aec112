package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// Item is one library track. ID is beets' stable item id.
type Item struct {
	ID          int64
	Artist      string
	Title       string
	AlbumArtist string
	MBArtistID  string
	Genre       string
	Path        string
}

// Store manages access to a beets library database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the library database at the given path. The file must
// already exist; showtag never creates or migrates a library.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("library database %q does not exist", path)
		}
		return nil, fmt.Errorf("stat library database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open library database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply busy_timeout pragma: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.verifySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) verifySchema(ctx context.Context) error {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='items'",
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("inspect library schema: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%q does not look like a beets library (no items table)", s.path)
	}
	return nil
}

// Count returns the number of items in the library.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM items").Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// Items lists every library item. The catalog is assumed small enough to
// enumerate in memory.
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, artist, title, albumartist, mb_artistid, genre, path FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			item                                    Item
			artist, title, albumArtist, mbid, genre sql.NullString
			path                                    []byte
		)
		if err := rows.Scan(&item.ID, &artist, &title, &albumArtist, &mbid, &genre, &path); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Artist = artist.String
		item.Title = title.String
		item.AlbumArtist = albumArtist.String
		item.MBArtistID = mbid.String
		item.Genre = genre.String
		item.Path = string(path)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// UpdateGenre persists a new genre value for one item.
func (s *Store) UpdateGenre(ctx context.Context, id int64, genre string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE items SET genre = ? WHERE id = ?", genre, id)
	if err != nil {
		return fmt.Errorf("update genre for item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d not found", id)
	}
	return nil
}
