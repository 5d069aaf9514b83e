package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PgFTS implements Searcher using PostgreSQL full-text search as a fallback.
type PgFTS struct {
	db *sql.DB
}

// NewPgFTS creates a PostgreSQL FTS searcher.
func NewPgFTS(db *sql.DB) *PgFTS {
	return &PgFTS{db: db}
}

// Healthy always returns true — if Postgres is down, the whole app is down.
func (p *PgFTS) Healthy() bool {
	return true
}

// Search runs plainto_tsquery over the memos a user owns or holds an accepted
// share on, ranked with ts_rank and snippeted with ts_headline.
func (p *PgFTS) Search(q Query) ([]Result, int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	const accessWhere = `m.fts @@ plainto_tsquery('english', $1)
		AND (m.owner_id = $2 OR EXISTS (
			SELECT 1 FROM memo_shares s
			WHERE s.memo_id = m.id AND s.shared_with = $2 AND s.status = 'accepted'
		))`

	countSQL := fmt.Sprintf(`SELECT count(*) FROM memos m WHERE %s`, accessWhere)

	dataSQL := fmt.Sprintf(`
		SELECT m.id, m.title,
			ts_headline('english', coalesce(m.content, ''), plainto_tsquery('english', $1), 'MaxFragments=1,MaxWords=30') AS snippet,
			m.owner_id, u.username,
			CASE WHEN m.owner_id = $2 THEN 'owner' ELSE 'shared' END AS access_type,
			ts_rank(m.fts, plainto_tsquery('english', $1)) AS rank
		FROM memos m
		JOIN users u ON u.id = m.owner_id
		WHERE %s
		ORDER BY rank DESC
		LIMIT %d OFFSET %d`, accessWhere, limit, offset)

	ctx := context.Background()

	var total int
	if err := p.db.QueryRowContext(ctx, countSQL, q.Text, q.UserID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgfts count: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, dataSQL, q.Text, q.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("pgfts query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var rank float64
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet, &r.OwnerID, &r.OwnerUsername, &r.AccessType, &rank); err != nil {
			return nil, 0, fmt.Errorf("pgfts scan: %w", err)
		}
		results = append(results, r)
	}

	return results, total, rows.Err()
}

// LoadAllRecords returns all memos with their accepted-share recipients for
// full reindexing.
func (p *PgFTS) LoadAllRecords(ctx context.Context) ([]MemoRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT m.id, m.title, m.content, m.owner_id, u.username,
			coalesce(string_agg(s.shared_with, ','), '')
		FROM memos m
		JOIN users u ON u.id = m.owner_id
		LEFT JOIN memo_shares s ON s.memo_id = m.id AND s.status = 'accepted'
		GROUP BY m.id, u.username
	`)
	if err != nil {
		return nil, fmt.Errorf("load memos: %w", err)
	}
	defer rows.Close()

	records := make([]MemoRecord, 0)
	for rows.Next() {
		var rec MemoRecord
		var sharedWith string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Content, &rec.OwnerID, &rec.OwnerUsername, &sharedWith); err != nil {
			return nil, fmt.Errorf("scan memo: %w", err)
		}
		if sharedWith != "" {
			rec.SharedWith = strings.Split(sharedWith, ",")
		} else {
			rec.SharedWith = []string{}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memos: %w", err)
	}

	return records, nil
}
