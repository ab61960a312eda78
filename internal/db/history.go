package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/udisondev/skirmish/internal/model"
)

// ErrMatchNotFound is returned by Get for an unknown id.
var ErrMatchNotFound = errors.New("match not found")

// Querier is the part of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MatchRecord — итог одного матча.
type MatchRecord struct {
	ID         uuid.UUID
	Picks      []string
	Winner     model.Team // TeamNone, если матч прерван или очередь исчерпана
	Turns      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// HistoryRepository реализует хранилище итогов матчей для PostgreSQL.
type HistoryRepository struct {
	q Querier
}

// NewHistoryRepository создаёт repository поверх q.
func NewHistoryRepository(q Querier) *HistoryRepository {
	return &HistoryRepository{q: q}
}

// Save inserts rec. Saving the same id twice is a no-op.
func (r *HistoryRepository) Save(ctx context.Context, rec MatchRecord) error {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO matches (id, picks, winner, turns, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.Picks, rec.Winner.String(), rec.Turns, rec.StartedAt, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("saving match %s: %w", rec.ID, err)
	}
	if tag.RowsAffected() == 0 {
		slog.Debug("match already recorded", "id", rec.ID)
	}
	return nil
}

const selectMatch = `SELECT id, picks, winner, turns, started_at, finished_at FROM matches`

// Get returns the record with the given id.
func (r *HistoryRepository) Get(ctx context.Context, id uuid.UUID) (MatchRecord, error) {
	rec, err := scanRecord(r.q.QueryRow(ctx, selectMatch+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MatchRecord{}, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
		}
		return MatchRecord{}, fmt.Errorf("querying match %s: %w", id, err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := r.q.Query(ctx, selectMatch+` ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}
	return out, nil
}

// Wins counts finished matches per winning team. Matches without a
// winner are counted under TeamNone.
func (r *HistoryRepository) Wins(ctx context.Context) (map[model.Team]int, error) {
	rows, err := r.q.Query(ctx, `SELECT winner, count(*) FROM matches GROUP BY winner`)
	if err != nil {
		return nil, fmt.Errorf("querying wins: %w", err)
	}
	defer rows.Close()

	wins := make(map[model.Team]int, 3)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scanning wins: %w", err)
		}
		team, err := model.ParseTeam(name)
		if err != nil {
			return nil, fmt.Errorf("scanning wins: %w", err)
		}
		wins[team] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wins: %w", err)
	}
	return wins, nil
}

func scanRecord(row pgx.Row) (MatchRecord, error) {
	var (
		rec    MatchRecord
		winner string
	)
	if err := row.Scan(&rec.ID, &rec.Picks, &winner, &rec.Turns, &rec.StartedAt, &rec.FinishedAt); err != nil {
		return MatchRecord{}, err
	}
	team, err := model.ParseTeam(winner)
	if err != nil {
		return MatchRecord{}, err
	}
	rec.Winner = team
	return rec, nil
}
