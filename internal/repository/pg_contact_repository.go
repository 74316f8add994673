package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/contactdesk/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact records.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Insert stores a new record, populating ID and timestamps. A unique
	// index violation comes back as *DuplicateError.
	Insert(ctx context.Context, c *model.Contact) error

	// FindByEmailOrPhone runs a single disjunctive lookup over both unique
	// fields. Returns ErrNotFound when no record matches either.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.Contact, error)

	// List returns all records newest first.
	List(ctx context.Context) ([]model.Contact, error)

	// Delete removes a record by id. Returns ErrNotFound when no row was
	// deleted.
	Delete(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var contactColumns = []string{"id", "name", "email", "phone", "message", "created_at", "updated_at"}

// uniqueConstraintFields maps the contacts unique constraints to the field
// names reported to callers. Names must stay in sync with migrations/001.
var uniqueConstraintFields = map[string]string{
	"contacts_email_key": "email",
	"contacts_phone_key": "phone",
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	db Querier
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(db Querier) *PgContactRepository {
	return &PgContactRepository{db: db}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Insert stores a new contacts row and populates c.ID and timestamps from
// the RETURNING clause. A unique-index violation is returned as
// *DuplicateError naming the colliding field; this is the expected outcome
// when a concurrent create wins the race after the caller's pre-check.
func (r *PgContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	query, args, err := psql.Insert("contacts").
		Columns("name", "email", "phone", "message").
		Values(c.Name, c.Email, c.Phone, c.Message).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if field, ok := uniqueConstraintFields[pgErr.ConstraintName]; ok {
				return &DuplicateError{Fields: []string{field}}
			}
			return &DuplicateError{}
		}
		return err
	}
	return nil
}

// FindByEmailOrPhone is the duplicate pre-check used before insert: one
// query over both unique fields, not two.
func (r *PgContactRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.Contact, error) {
	query, args, err := psql.Select(contactColumns...).
		From("contacts").
		Where(sq.Or{sq.Eq{"email": email}, sq.Eq{"phone": phone}}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c model.Contact
	if err := pgxscan.Get(ctx, r.db, &c, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all contacts newest first. The id tiebreak keeps the order
// stable for rows created in the same instant.
func (r *PgContactRepository) List(ctx context.Context) ([]model.Contact, error) {
	query, args, err := psql.Select(contactColumns...).
		From("contacts").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var contacts []model.Contact
	if err := pgxscan.Select(ctx, r.db, &contacts, query, args...); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Delete removes a contact by id. Returns ErrNotFound when no row matched.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("contacts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping verifies database connectivity.
func (r *PgContactRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
