// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite keeps the whole database in a single file with no separate
// server process, which suits this application: one small table, one
// writing process.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded; nothing from it is called directly.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/treasure-hunt-api/internal/config"
	"github.com/aanand-mishra/treasure-hunt-api/internal/geo"
	"github.com/aanand-mishra/treasure-hunt-api/internal/storage"
	"github.com/aanand-mishra/treasure-hunt-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, which is a connection pool managed by
// database/sql and safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at the path specified in
// cfg.StoragePath, creates the treasures table if it does not already
// exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent, safe on every startup.
	//
	// Schema:
	//   id         - integer primary key, auto-incremented by SQLite
	//   name       - name of the buried item
	//   latitude,
	//   longitude  - burial coordinates, immutable once stored (there
	//                is no update operation in this system)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS treasures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			name      TEXT NOT NULL,
			latitude  REAL NOT NULL,
			longitude REAL NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// FindNearestTreasure returns the closest treasure within
// maxDistanceFeet of (lat, lon), annotated with its distance, or
// (nil, nil) when nothing qualifies.
//
// A bounding-box WHERE clause discards far-away rows cheaply in SQL;
// the exact haversine distance is then computed in Go for the handful
// of candidates that remain. Rows arrive ordered by id and only a
// strictly smaller distance replaces the current best, so equidistant
// treasures resolve deterministically to the lowest id.
//
// The longitude condition needs care at the antimeridian: a box around
// a point near +/-180 extends past the seam, where stored longitudes
// wrap to the other sign. In that case the single BETWEEN becomes two
// ranges ORed together; a box spanning all 360 degrees (possible near
// a pole) drops the longitude condition entirely.
func (s *SQLite) FindNearestTreasure(lat, lon, maxDistanceFeet float64) (*types.Treasure, error) {
	minLat, maxLat, minLon, maxLon := geo.BoundingBox(lat, lon, maxDistanceFeet)

	query := `
		SELECT id, name, latitude, longitude
		FROM treasures
		WHERE latitude BETWEEN ? AND ? AND `
	args := []any{minLat, maxLat}

	switch {
	case maxLon-minLon >= 360:
		// The box covers every longitude.
		query += `1 = 1`
	case minLon < -180:
		// Box crosses the seam westward: [minLon+360, 180] or [-180, maxLon].
		query += `(longitude >= ? OR longitude <= ?)`
		args = append(args, minLon+360, maxLon)
	case maxLon > 180:
		// Box crosses the seam eastward: [minLon, 180] or [-180, maxLon-360].
		query += `(longitude >= ? OR longitude <= ?)`
		args = append(args, minLon, maxLon-360)
	default:
		query += `longitude BETWEEN ? AND ?`
		args = append(args, minLon, maxLon)
	}

	query += `
		ORDER BY id
	`

	stmt, err := s.Db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("FindNearestTreasure: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("FindNearestTreasure: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	var nearest *types.Treasure

	for rows.Next() {
		var (
			id     int64
			name   string
			rowLat float64
			rowLon float64
		)
		if err := rows.Scan(&id, &name, &rowLat, &rowLon); err != nil {
			return nil, fmt.Errorf("FindNearestTreasure: scan row: %w", err)
		}

		distance := geo.DistanceFeet(lat, lon, rowLat, rowLon)
		if distance > maxDistanceFeet {
			continue // inside the box but outside the circle
		}

		if nearest == nil || distance < nearest.Distance {
			nearest = &types.Treasure{
				ID:        &id,
				Name:      &name,
				Latitude:  rowLat,
				Longitude: rowLon,
				Distance:  distance,
			}
		}
	}

	// rows.Err() captures any error that occurred during iteration,
	// separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindNearestTreasure: rows iteration: %w", err)
	}

	return nearest, nil
}

// CreateTreasure inserts a new row into the treasures table and returns
// the auto-generated primary key.
//
// Prepared statements keep user input out of the SQL text itself: the
// driver sends query and values separately, so a name like
// "'; DROP TABLE treasures; --" is stored as data, never run as SQL.
func (s *SQLite) CreateTreasure(name string, lat, lon float64) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO treasures (name, latitude, longitude) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateTreasure: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(name, lat, lon)
	if err != nil {
		return 0, fmt.Errorf("CreateTreasure: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateTreasure: last insert id: %w", err)
	}

	return lastID, nil
}

// DeleteTreasureByID removes a treasure row by primary key. Deleting a
// row that no longer exists returns storage.ErrTreasureNotFound.
func (s *SQLite) DeleteTreasureByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM treasures WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteTreasureByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteTreasureByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteTreasureByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrTreasureNotFound
	}

	return nil
}
