package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type Repository interface {
	// Timeline returns up to limit entries plus a flag telling whether
	// more rows exist past the requested page.
	Timeline(ctx context.Context, filters Filters) ([]Entry, bool, error)
	// DeleteOlderThan prunes entries past the retention horizon and
	// reports how many rows were removed.
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) Timeline(ctx context.Context, filters Filters) ([]Entry, bool, error) {
	query := `SELECT a.id, a.actor_id, COALESCE(u.username, ''), a.action, a.entity, a.entity_id, a.detail, a.meta, a.occurred_at
		FROM audit_logs a LEFT JOIN users u ON u.id = a.actor_id WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addCond := func(cond string, value interface{}) {
		argCount++
		query += ` AND ` + fmt.Sprintf(cond, "$"+strconv.Itoa(argCount))
		args = append(args, value)
	}

	if filters.ActorID > 0 {
		addCond(`a.actor_id = %s`, filters.ActorID)
	}
	if filters.Entity != "" {
		addCond(`a.entity = %s`, filters.Entity)
	}
	if filters.Action != "" {
		addCond(`a.action = %s`, filters.Action)
	}
	if filters.DateFrom != nil {
		addCond(`a.occurred_at >= %s`, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addCond(`a.occurred_at <= %s`, *filters.DateTo)
	}

	page := filters.Page
	if page < 1 {
		page = shared.DefaultPage
	}
	perPage := filters.PerPage
	if perPage < 1 {
		perPage = shared.DefaultPerPage
	}
	if perPage > shared.MaxPerPage {
		perPage = shared.MaxPerPage
	}

	// Fetch one extra row to learn whether a next page exists.
	query += ` ORDER BY a.occurred_at DESC`
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, perPage+1)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (page-1)*perPage)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("audit: timeline: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var metaJSON []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorUsername, &e.Action, &e.Entity,
			&e.EntityID, &e.Detail, &metaJSON, &e.OccurredAt); err != nil {
			return nil, false, fmt.Errorf("audit: scan: %w", err)
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &e.Meta)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	hasNext := len(entries) > perPage
	if hasNext {
		entries = entries[:perPage]
	}
	return entries, hasNext, nil
}

func (r *repository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM audit_logs WHERE occurred_at < NOW() - ($1 * INTERVAL '1 day')`, days)
	if err != nil {
		return 0, fmt.Errorf("audit: delete older than %d days: %w", days, err)
	}
	return tag.RowsAffected(), nil
}
