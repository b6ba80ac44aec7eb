package countries

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate nombre")
	ErrDuplicateCode = errors.New("duplicate codigo")
)

// Store is the record store the service is built on.
// Single-row lookups return ErrNotFound when nothing matches and the lowest id
// when several rows match. Insert and Update return ErrDuplicateName or
// ErrDuplicateCode when a unique index rejects the row.
type Store interface {
	List(ctx context.Context) ([]Country, error)
	FindByID(ctx context.Context, id int64) (*Country, error)
	FindOne(ctx context.Context, field Field, value string) (*Country, error)
	Exists(ctx context.Context, field Field, value string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, c *Country) error
	Update(ctx context.Context, c *Country) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	// DeleteByContinent removes every matching row in one transaction
	DeleteByContinent(ctx context.Context, continent string) (int64, error)
	Summary(ctx context.Context) (*Summary, error)
}

// duplicateError maps a unique index violation from any supported driver to
// ErrDuplicateName or ErrDuplicateCode. Other errors are returned unchanged.
func duplicateError(err error) error {
	if err == nil {
		return nil
	}

	// key names the violated index or column, never the offending value
	var key string
	var myErr *mysql.MySQLError
	var liteErr sqlite3.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &myErr) && myErr.Number == 1062:
		key = afterLast(myErr.Message, "for key")
	case errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		key = afterLast(liteErr.Error(), "failed:")
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		key = pgErr.ConstraintName
	default:
		return err
	}

	switch {
	case strings.Contains(key, "nombre"):
		return ErrDuplicateName
	case strings.Contains(key, "codigo"):
		return ErrDuplicateCode
	}
	return err
}

func afterLast(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}
