package database

import (
	"database/sql"
	"time"
)

// RecentDeletions returns the N most recent deletion events
func (h *History) RecentDeletions(limit int) ([]DeletionRecord, error) {
	query := `
	SELECT id, deleted_at, path, name, method, entries, created_at
	FROM deletions
	ORDER BY deleted_at DESC
	LIMIT ?
	`

	return h.queryDeletions(query, limit)
}

// DeletionsSince returns deletions at or after the given time
func (h *History) DeletionsSince(since time.Time) ([]DeletionRecord, error) {
	query := `
	SELECT id, deleted_at, path, name, method, entries, created_at
	FROM deletions
	WHERE deleted_at >= ?
	ORDER BY deleted_at DESC
	`

	return h.queryDeletions(query, since)
}

// DeletionsByPath returns deletions whose path matches a LIKE pattern
func (h *History) DeletionsByPath(pathPattern string) ([]DeletionRecord, error) {
	query := `
	SELECT id, deleted_at, path, name, method, entries, created_at
	FROM deletions
	WHERE path LIKE ?
	ORDER BY deleted_at DESC
	`

	return h.queryDeletions(query, pathPattern)
}

// DeletionsByMethod returns deletions filtered by removal method
func (h *History) DeletionsByMethod(method string) ([]DeletionRecord, error) {
	query := `
	SELECT id, deleted_at, path, name, method, entries, created_at
	FROM deletions
	WHERE method = ?
	ORDER BY deleted_at DESC
	`

	return h.queryDeletions(query, method)
}

// RecentRuns returns the N most recent tool invocations
func (h *History) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := h.db.Query(`
	SELECT id, started_at, target, deleted, entries_removed, outcome, duration_ms
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Target, &r.Deleted,
			&r.EntriesRemoved, &r.Outcome, &r.DurationMS); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountByMethod returns deletion counts grouped by removal method
func (h *History) CountByMethod() (map[string]int, error) {
	rows, err := h.db.Query(`
	SELECT method, COUNT(*)
	FROM deletions
	GROUP BY method
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			return nil, err
		}
		counts[method] = count
	}
	return counts, rows.Err()
}

// HistoryStats holds aggregated statistics over the whole database
type HistoryStats struct {
	Deletions      int64
	EntriesRemoved int64
	Runs           int64
	SizeBytes      int64
	ByMethod       map[string]int
	Oldest         time.Time
	Newest         time.Time
}

// Stats returns aggregate statistics for the stats view
func (h *History) Stats() (*HistoryStats, error) {
	stats := &HistoryStats{}

	err := h.db.QueryRow(`
	SELECT COUNT(*), COALESCE(SUM(entries), 0) FROM deletions
	`).Scan(&stats.Deletions, &stats.EntriesRemoved)
	if err != nil {
		return nil, err
	}

	if err := h.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&stats.Runs); err != nil {
		return nil, err
	}

	var pageCount, pageSize int64
	if err := h.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return nil, err
	}
	if err := h.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return nil, err
	}
	stats.SizeBytes = pageCount * pageSize

	stats.ByMethod, err = h.CountByMethod()
	if err != nil {
		return nil, err
	}

	var oldest, newest sql.NullString
	err = h.db.QueryRow(`SELECT MIN(deleted_at), MAX(deleted_at) FROM deletions`).Scan(&oldest, &newest)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if t, ok := parseSQLiteTime(oldest); ok {
		stats.Oldest = t
	}
	if t, ok := parseSQLiteTime(newest); ok {
		stats.Newest = t
	}

	return stats, nil
}

// parseSQLiteTime handles the formats SQLite uses when aggregating DATETIME
// columns, which bypass the driver's automatic parsing.
func parseSQLiteTime(s sql.NullString) (time.Time, bool) {
	if !s.Valid || s.String == "" {
		return time.Time{}, false
	}
	formats := []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05-07:00",
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s.String); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// queryDeletions is a helper function to execute queries and scan results
func (h *History) queryDeletions(query string, args ...interface{}) ([]DeletionRecord, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []DeletionRecord
	for rows.Next() {
		var r DeletionRecord
		if err := rows.Scan(&r.ID, &r.DeletedAt, &r.Path, &r.Name,
			&r.Method, &r.Entries, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
