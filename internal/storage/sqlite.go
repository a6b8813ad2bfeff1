// Package storage provides SQLite-based persistence for recorded animation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for recorded runs.
type Store struct {
	db *sql.DB
}

// Run is a headless recording of one scene.
type Run struct {
	ID        int64
	SceneID   string
	Title     string
	Ticks     int           // Frames simulated
	Step      time.Duration // Fixed delta per frame
	Passes    uint64        // Completed passes across all animations
	Finished  bool          // Every animation had stopped by the last frame
	Frame     string        // Final screen as plain text
	Samples   int           // Number of stored samples, filled by queries
	CreatedAt time.Time
}

// Sample is one setter call observed while recording.
type Sample struct {
	Tick      int
	Animation string
	Value     int32
}

// SceneStats aggregates the runs of one scene.
type SceneStats struct {
	SceneID string
	Runs    int
	LastRun time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			step_us INTEGER NOT NULL,
			passes INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			frame TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);

		CREATE TABLE IF NOT EXISTS samples (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			tick INTEGER NOT NULL,
			animation TEXT NOT NULL,
			value INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a run and its samples in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run Run, samples []Sample) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (scene_id, title, ticks, step_us, passes, finished, frame)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.SceneID, run.Title, run.Ticks, run.Step.Microseconds(), int64(run.Passes), run.Finished, run.Frame,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO samples (run_id, tick, animation, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, smp := range samples {
		if _, err := stmt.Exec(id, smp.Tick, smp.Animation, smp.Value); err != nil {
			return 0, fmt.Errorf("storage: cannot save sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

const runColumns = `r.id, r.scene_id, r.title, r.ticks, r.step_us, r.passes, r.finished, r.frame,
	r.created_at, (SELECT COUNT(*) FROM samples s WHERE s.run_id = r.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var stepUS, passes int64
	var createdAt any
	if err := sc.Scan(&r.ID, &r.SceneID, &r.Title, &r.Ticks, &stepUS, &passes, &r.Finished, &r.Frame,
		&createdAt, &r.Samples); err != nil {
		return r, err
	}
	r.Step = time.Duration(stepUS) * time.Microsecond
	r.Passes = uint64(passes)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and the SQLite text form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Runs returns the most recent runs first. An empty sceneID lists every
// scene. A non-positive limit defaults to 20.
func (s *Store) Runs(sceneID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs r
		 WHERE ? = '' OR r.scene_id = ?
		 ORDER BY r.id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Run returns one run by id.
func (s *Store) Run(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs r WHERE r.id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// Samples returns the samples of a run in recording order.
func (s *Store) Samples(runID int64) ([]Sample, error) {
	rows, err := s.db.Query(
		`SELECT tick, animation, value
		 FROM samples
		 WHERE run_id = ?
		 ORDER BY tick, rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var smp Sample
		if err := rows.Scan(&smp.Tick, &smp.Animation, &smp.Value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteRun removes a run and its samples.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM samples WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete samples: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return tx.Commit()
}

// SceneStats returns run counts per scene, ordered by scene id.
func (s *Store) SceneStats() ([]SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), MAX(created_at)
		 FROM runs
		 GROUP BY scene_id
		 ORDER BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var out []SceneStats
	for rows.Next() {
		var st SceneStats
		var last any
		if err := rows.Scan(&st.SceneID, &st.Runs, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.LastRun = parseTime(last)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
