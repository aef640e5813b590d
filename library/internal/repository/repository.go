package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-resource/library/internal/errs"
	"github.com/Astemirdum/library-resource/library/internal/model"
	"github.com/Astemirdum/library-resource/pkg/pagination"
)

type Repository interface {
	Insert(ctx context.Context, lib model.Library) (model.Library, error)
	Upsert(ctx context.Context, lib model.Library) (model.Library, error)
	FindAll(ctx context.Context, p pagination.Pageable) (model.ListLibraries, error)
	FindOne(ctx context.Context, id int64) (model.Library, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const libraryTableName = `library`

var (
	qb             = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	libraryColumns = []string{"id", "library_uid", "name", "address", "city"}
	returning      = "returning " + strings.Join(libraryColumns, ", ")
)

func (r *repository) Insert(ctx context.Context, lib model.Library) (model.Library, error) {
	query, args, err := qb.Insert(libraryTableName).
		Columns("library_uid", "name", "address", "city").
		Values(lib.LibraryUid, lib.Name, lib.Address, lib.City).
		Suffix(returning).
		ToSql()
	if err != nil {
		return model.Library{}, err
	}

	var res model.Library
	if err := r.db.GetContext(ctx, &res, query, args...); err != nil {
		r.log.Error("Insert", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Library{}, mapError(err)
	}
	return res, nil
}

// Upsert writes lib under its own id. library_uid is kept when the row already exists.
// The identity sequence is moved past the written id so later inserts do not collide with it.
func (r *repository) Upsert(ctx context.Context, lib model.Library) (model.Library, error) {
	if lib.ID == nil {
		return model.Library{}, errors.New("upsert without id")
	}
	query, args, err := qb.Insert(libraryTableName).
		Columns("id", "library_uid", "name", "address", "city").
		Values(*lib.ID, lib.LibraryUid, lib.Name, lib.Address, lib.City).
		Suffix("on conflict (id) do update set name = excluded.name, address = excluded.address, city = excluded.city " + returning).
		ToSql()
	if err != nil {
		return model.Library{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Library{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var res model.Library
	if err := tx.GetContext(ctx, &res, query, args...); err != nil {
		r.log.Error("Upsert", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Library{}, mapError(err)
	}
	if _, err := tx.ExecContext(ctx, syncSequenceQuery, *lib.ID); err != nil {
		return model.Library{}, errors.Wrap(err, "sync library id sequence")
	}
	if err := tx.Commit(); err != nil {
		return model.Library{}, errors.Wrap(err, "commit")
	}
	return res, nil
}

// syncSequenceQuery sets the sequence to max(written id, its current value).
// nextval may burn one value; gaps in ids are fine.
const syncSequenceQuery = `select setval(pg_get_serial_sequence('library', 'id'),
	greatest($1::bigint, nextval(pg_get_serial_sequence('library', 'id')) - 1))`

func (r *repository) FindAll(ctx context.Context, p pagination.Pageable) (model.ListLibraries, error) {
	countQuery, countArgs, err := qb.Select("count(*)").From(libraryTableName).ToSql()
	if err != nil {
		return model.ListLibraries{}, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return model.ListLibraries{}, errors.Wrap(err, "count libraries")
	}

	q := qb.Select(libraryColumns...).
		From(libraryTableName).
		OrderBy(orderBy(p.Sort)...)
	if p.Size > 0 {
		q = q.Limit(uint64(p.Size)).Offset(uint64(p.Offset()))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return model.ListLibraries{}, err
	}
	r.log.Debug("FindAll", zap.String("query", query), zap.Any("args", args))

	libs := make([]model.Library, 0, p.Size)
	if err := r.db.SelectContext(ctx, &libs, query, args...); err != nil {
		return model.ListLibraries{}, errors.Wrap(err, "select libraries")
	}

	return model.ListLibraries{
		Pageable:      p,
		TotalElements: total,
		Items:         libs,
	}, nil
}

func (r *repository) FindOne(ctx context.Context, id int64) (model.Library, error) {
	query, args, err := qb.Select(libraryColumns...).
		From(libraryTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Library{}, err
	}

	var lib model.Library
	if err := r.db.GetContext(ctx, &lib, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Library{}, errs.ErrNotFound
		}
		return model.Library{}, err
	}
	return lib, nil
}

// Delete reports whether a row was removed; a missing id is not an error.
func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Delete(libraryTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// orderBy renders sort clauses; columns were whitelisted by pagination.ParseQuery.
func orderBy(sort []pagination.Order) []string {
	if len(sort) == 0 {
		return []string{"id ASC"}
	}
	clauses := make([]string, 0, len(sort)+1)
	hasID := false
	for _, o := range sort {
		clauses = append(clauses, o.Property+" "+strings.ToUpper(string(o.Direction)))
		if o.Property == "id" {
			hasID = true
		}
	}
	if !hasID {
		clauses = append(clauses, "id ASC")
	}
	return clauses
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return errors.Wrapf(errs.ErrConstraint, "%s: %s", pgErr.ConstraintName, pgErr.Message)
	}
	return err
}
