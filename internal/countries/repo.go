package countries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zjoart/paises/pkg/logger"
)

// Dialect selects the DDL flavour of the SQL store. Queries are shared.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite3"
)

const selectColumns = `SELECT id, nombre, capital, continente, idioma, codigo FROM paises`

// SQLStore is the database/sql implementation of Store
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore wraps an open *sql.DB
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Close closes the underlying pool
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// DropTables drops the paises table
func (s *SQLStore) DropTables(ctx context.Context) error {
	logger.Info("repo: DropTables start")
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS paises;`); err != nil {
		logger.Error("repo: drop paises table failed", logger.WithError(err))
		return err
	}
	logger.Info("repo: DropTables complete")
	return nil
}

// EnsureTables creates the paises table and its unique indexes when needed
func (s *SQLStore) EnsureTables(ctx context.Context) error {
	logger.Info("repo: EnsureTables start", logger.Fields{"dialect": s.dialect})

	var stmts []string
	switch s.dialect {
	case DialectMySQL:
		stmts = []string{`
    CREATE TABLE IF NOT EXISTS paises (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        nombre VARCHAR(255) NOT NULL,
        capital VARCHAR(255) NOT NULL,
        continente VARCHAR(255),
        idioma VARCHAR(255),
        codigo VARCHAR(32) NOT NULL,
        UNIQUE KEY uq_paises_nombre (nombre),
        UNIQUE KEY uq_paises_codigo (codigo),
        KEY idx_paises_continente (continente)
    );`}
	case DialectSQLite:
		stmts = []string{`
    CREATE TABLE IF NOT EXISTS paises (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        nombre TEXT NOT NULL,
        capital TEXT NOT NULL,
        continente TEXT,
        idioma TEXT,
        codigo TEXT NOT NULL
    );`,
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_paises_nombre ON paises (nombre);`,
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_paises_codigo ON paises (codigo);`,
			`CREATE INDEX IF NOT EXISTS idx_paises_continente ON paises (continente);`,
		}
	default:
		return fmt.Errorf("unsupported dialect %q", s.dialect)
	}

	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			logger.Error("repo: create paises table failed", logger.WithError(err))
			return err
		}
	}

	logger.Info("repo: EnsureTables complete")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCountry(row rowScanner) (*Country, error) {
	var c Country
	var continent, language sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Capital, &continent, &language, &c.Code); err != nil {
		return nil, err
	}
	if continent.Valid {
		c.Continent = &continent.String
	}
	if language.Valid {
		c.Language = &language.String
	}
	return &c, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// List returns all countries ordered by id
func (s *SQLStore) List(ctx context.Context) ([]Country, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		logger.Error("repo: List query failed", logger.WithError(err))
		return nil, err
	}
	defer rows.Close()

	out := []Country{}
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		logger.Error("repo: List iteration failed", logger.WithError(err))
		return nil, err
	}

	logger.Debug("repo: List complete", logger.Fields{"count": len(out)})
	return out, nil
}

// FindByID fetches a single country by primary key
func (s *SQLStore) FindByID(ctx context.Context, id int64) (*Country, error) {
	c, err := scanCountry(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("repo: FindByID not found", logger.Fields{"id": id})
			return nil, ErrNotFound
		}
		logger.Error("repo: FindByID failed", logger.Fields{"id": id}, logger.WithError(err))
		return nil, err
	}
	return c, nil
}

// FindOne fetches the lowest-id country whose field equals value
func (s *SQLStore) FindOne(ctx context.Context, field Field, value string) (*Country, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	q := selectColumns + ` WHERE ` + string(field) + ` = ? ORDER BY id LIMIT 1`
	c, err := scanCountry(s.db.QueryRowContext(ctx, q, value))
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("repo: FindOne not found", logger.Fields{"field": field, "value": value})
			return nil, ErrNotFound
		}
		logger.Error("repo: FindOne failed", logger.Fields{"field": field, "value": value}, logger.WithError(err))
		return nil, err
	}
	return c, nil
}

// Exists reports whether any country has field equal to value
func (s *SQLStore) Exists(ctx context.Context, field Field, value string) (bool, error) {
	if !field.Valid() {
		return false, fmt.Errorf("unknown field %q", field)
	}
	var n int64
	q := `SELECT COUNT(*) FROM paises WHERE ` + string(field) + ` = ?`
	if err := s.db.QueryRowContext(ctx, q, value).Scan(&n); err != nil {
		logger.Error("repo: Exists failed", logger.Fields{"field": field}, logger.WithError(err))
		return false, err
	}
	return n > 0, nil
}

// ExistsByID reports whether a country with id exists
func (s *SQLStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM paises WHERE id = ?`, id).Scan(&n); err != nil {
		logger.Error("repo: ExistsByID failed", logger.Fields{"id": id}, logger.WithError(err))
		return false, err
	}
	return n > 0, nil
}

// Insert stores a new country and sets its ID
func (s *SQLStore) Insert(ctx context.Context, c *Country) error {
	q := `INSERT INTO paises (nombre, capital, continente, idioma, codigo) VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, c.Name, c.Capital, nullString(c.Continent), nullString(c.Language), c.Code)
	if err != nil {
		err = duplicateError(err)
		logger.Error("repo: Insert failed", logger.Fields{"country": c.Name}, logger.WithError(err))
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		logger.Error("repo: Insert LastInsertId failed", logger.WithError(err))
		return err
	}
	c.ID = id
	logger.Info("repo: Insert success", logger.Fields{"country": c.Name, "id": id})
	return nil
}

// Update replaces every mutable column of the row with c.ID
func (s *SQLStore) Update(ctx context.Context, c *Country) error {
	q := `UPDATE paises SET nombre = ?, capital = ?, continente = ?, idioma = ?, codigo = ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, c.Name, c.Capital, nullString(c.Continent), nullString(c.Language), c.Code, c.ID)
	if err != nil {
		err = duplicateError(err)
		logger.Error("repo: Update failed", logger.Fields{"id": c.ID}, logger.WithError(err))
		return err
	}
	// MySQL reports 0 affected rows when nothing changed, so confirm existence instead
	n, err := res.RowsAffected()
	if err != nil {
		logger.Error("repo: Update RowsAffected failed", logger.Fields{"id": c.ID}, logger.WithError(err))
		return err
	}
	if n == 0 {
		ok, err := s.ExistsByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	logger.Info("repo: Update success", logger.Fields{"id": c.ID})
	return nil
}

// DeleteByID deletes a country by id
func (s *SQLStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM paises WHERE id = ?`, id)
	if err != nil {
		logger.Error("repo: DeleteByID failed", logger.Fields{"id": id}, logger.WithError(err))
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		logger.Error("repo: DeleteByID RowsAffected failed", logger.Fields{"id": id}, logger.WithError(err))
		return false, err
	}
	logger.Info("repo: DeleteByID result", logger.Fields{"id": id, "deleted": n > 0})
	return n > 0, nil
}

// DeleteByName deletes countries whose name matches exactly
func (s *SQLStore) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM paises WHERE nombre = ?`, name)
	if err != nil {
		logger.Error("repo: DeleteByName failed", logger.Fields{"name": name}, logger.WithError(err))
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		logger.Error("repo: DeleteByName RowsAffected failed", logger.Fields{"name": name}, logger.WithError(err))
		return 0, err
	}
	logger.Info("repo: DeleteByName result", logger.Fields{"name": name, "deleted": n})
	return n, nil
}

// DeleteByContinent deletes every country of a continent in one transaction.
// It returns 0 and makes no change when nothing matches.
func (s *SQLStore) DeleteByContinent(ctx context.Context, continent string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("repo: DeleteByContinent begin tx failed", logger.WithError(err))
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM paises WHERE continente = ?`, continent)
	if err != nil {
		logger.Error("repo: DeleteByContinent failed", logger.Fields{"continent": continent}, logger.WithError(err))
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		logger.Error("repo: DeleteByContinent RowsAffected failed", logger.Fields{"continent": continent}, logger.WithError(err))
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if err := tx.Commit(); err != nil {
		logger.Error("repo: DeleteByContinent commit failed", logger.WithError(err))
		return 0, err
	}
	logger.Info("repo: DeleteByContinent result", logger.Fields{"continent": continent, "deleted": n})
	return n, nil
}

// Summary returns the total count and a per-continent breakdown
func (s *SQLStore) Summary(ctx context.Context) (*Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT continente, COUNT(*) FROM paises GROUP BY continente`)
	if err != nil {
		logger.Error("repo: Summary failed", logger.WithError(err))
		return nil, err
	}
	defer rows.Close()

	sum := &Summary{PerContinent: map[string]int64{}}
	for rows.Next() {
		var continent sql.NullString
		var n int64
		if err := rows.Scan(&continent, &n); err != nil {
			return nil, err
		}
		key := NoContinent
		if continent.Valid {
			key = continent.String
		}
		sum.PerContinent[key] += n
		sum.Total += n
	}
	return sum, rows.Err()
}
