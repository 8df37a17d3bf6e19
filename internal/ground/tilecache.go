package ground

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// TileCache stores fetched elevation tiles in a local SQLite database so
// repeated runs over the same area skip the network.
type TileCache struct {
	db *sql.DB
}

// OpenTileCache opens (and if needed initializes) the cache database at the
// given path.
func OpenTileCache(path string) (*TileCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS tiles (
		zoom INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		png BLOB NOT NULL,
		fetched_at INTEGER NOT NULL,
		PRIMARY KEY (zoom, x, y)
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &TileCache{db: db}, nil
}

func (c *TileCache) Close() error {
	return c.db.Close()
}

// Get returns the cached PNG bytes for a tile, if present.
func (c *TileCache) Get(zoom uint8, x, y uint32) ([]byte, bool) {
	var raw []byte
	err := c.db.QueryRow(
		`SELECT png FROM tiles WHERE zoom = ? AND x = ? AND y = ?`,
		zoom, x, y,
	).Scan(&raw)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Put stores a tile, replacing any previous copy.
func (c *TileCache) Put(zoom uint8, x, y uint32, raw []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO tiles (zoom, x, y, png, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		zoom, x, y, raw, time.Now().Unix(),
	)
	return err
}
