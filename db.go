package twobpp

import (
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"fmt"

	"github.com/bodgit/twobpp/tile"
	_ "github.com/mattn/go-sqlite3"
)

// TileDB caches encoded tiles keyed by the SHA1 of the pixels they were
// encoded from.
type TileDB struct {
	db *sql.DB
}

// NewTileDB opens or creates the cache at file.
func NewTileDB(file string) (*TileDB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tile (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &TileDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *TileDB) Close() error {
	return db.db.Close()
}

// Len returns the number of cached tiles.
func (db *TileDB) Len() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM tile").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func checksum(pixels []uint64) (string, error) {
	h := sha1.New()
	if err := binary.Write(h, binary.BigEndian, pixels); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// Encode returns the encoded tile for pixels, either from the cache or by
// encoding and then storing it. The boolean reports a cache hit. Pixels that
// fail to encode are never stored.
func (db *TileDB) Encode(pixels []uint64) ([]byte, bool, error) {
	sha, err := checksum(pixels)
	if err != nil {
		return nil, false, err
	}

	var b []byte
	switch err := db.db.QueryRow("SELECT data FROM tile WHERE sha1 = ?", sha).Scan(&b); err {
	case sql.ErrNoRows:
		b, err := tile.Encode(pixels)
		if err != nil {
			return nil, false, err
		}
		if _, err := db.db.Exec("INSERT OR IGNORE INTO tile (sha1, data) VALUES (?, ?)", sha, b); err != nil {
			return nil, false, err
		}
		return b, false, nil
	case nil:
		if len(b) != tile.Size {
			return nil, false, fmt.Errorf("twobpp: cached tile %s is %d bytes", sha, len(b))
		}
		return b, true, nil
	default:
		return nil, false, err
	}
}
