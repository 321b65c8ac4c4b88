package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/tidewire/tidewire/internal/models"
	srvErrors "github.com/tidewire/tidewire/pkg/errors"
)

// RunStore journals worker runs.
type RunStore struct {
	db QueryInterceptor
}

func NewRunStore(db QueryInterceptor) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) Insert(ctx context.Context, run models.Run) error {
	_, err := s.db.ExecContext(ctx, queryInsertRun,
		run.ID.String(),
		run.Wheel,
		run.Worker,
		run.ScheduledAt,
		run.StartedAt,
		run.Duration.Nanoseconds(),
		run.Panicked,
	)
	return err
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query, args, err := sq.Select(runColumns...).
		From(runsTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewRunNotFoundError(id.String())
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns the runs matching opts, newest first.
func (s *RunStore) List(ctx context.Context, opts ...ListOption) ([]models.Run, error) {
	builder := sq.Select(runColumns...).From(runsTable)

	for _, opt := range opts {
		builder = opt(builder)
	}
	builder = builder.OrderBy("started_at DESC", "id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

func (s *RunStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From(runsTable)

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Summary aggregates the runs matching opts per worker, ordered by worker.
func (s *RunStore) Summary(ctx context.Context, opts ...ListOption) ([]models.RunSummary, error) {
	builder := sq.Select(
		"worker",
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE panicked)",
		"AVG(duration_ns)",
		"MAX(duration_ns)",
		"MAX(started_at)",
	).From(runsTable).
		GroupBy("worker").
		OrderBy("worker")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.RunSummary
	for rows.Next() {
		var (
			sum     models.RunSummary
			avg     float64
			maxNano int64
		)
		if err := rows.Scan(&sum.Worker, &sum.Runs, &sum.Panics, &avg, &maxNano, &sum.LastRun); err != nil {
			return nil, err
		}
		sum.AvgDuration = time.Duration(avg)
		sum.MaxDuration = time.Duration(maxNano)
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// DeleteBefore removes the runs started before t and returns how many were
// removed.
func (s *RunStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, queryDeleteRunsBefore, t)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var (
		run      models.Run
		id       string
		duration int64
	)
	err := row.Scan(
		&id,
		&run.Wheel,
		&run.Worker,
		&run.ScheduledAt,
		&run.StartedAt,
		&duration,
		&run.Panicked,
	)
	if err != nil {
		return nil, err
	}
	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	run.Duration = time.Duration(duration)
	return &run, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByWorkers(workers ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(workers) == 0 {
			return b
		}
		return b.Where(sq.Eq{"worker": workers})
	}
}

func ByWheel(wheel string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if wheel == "" {
			return b
		}
		return b.Where(sq.Eq{"wheel": wheel})
	}
}

func ByPanicked(panicked bool) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"panicked": panicked})
	}
}

// ByStartedRange keeps the runs started in [from, to). A zero bound is open.
func ByStartedRange(from, to time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if !from.IsZero() {
			b = b.Where(sq.GtOrEq{"started_at": from})
		}
		if !to.IsZero() {
			b = b.Where(sq.Lt{"started_at": to})
		}
		return b
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}
