package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage"
)

// Compile-time interface checks.
var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.SessionStore = (*Store)(nil)
	_ storage.HistoryStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users, sessions, and
// conversion history.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects a pool and applies pending migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := runMigrations(ctx, databaseURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateUser inserts a new user row. A duplicate email yields ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (id, email, username, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, email, username, password_hash, role, created_at, updated_at;
	`
	row := s.pool.QueryRow(ctx, query, user.ID, user.Email, user.Username, user.PasswordHash, string(user.Role))
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by its stored (normalized) email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT id, email, username, password_hash, role, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByID fetches a user by id.
func (s *Store) FindByID(ctx context.Context, id string) (models.User, error) {
	const query = `
	SELECT id, email, username, password_hash, role, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// UpdateUser applies the non-nil fields of upd to the user row.
func (s *Store) UpdateUser(ctx context.Context, id string, upd storage.UserUpdate) (models.User, error) {
	const query = `
	UPDATE users SET
		email = COALESCE($2, email),
		username = COALESCE($3, username),
		role = COALESCE($4, role),
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, email, username, password_hash, role, created_at, updated_at;
	`
	var role *string
	if upd.Role != nil {
		r := string(*upd.Role)
		role = &r
	}
	updated, err := scanUser(s.pool.QueryRow(ctx, query, id, upd.Email, upd.Username, role))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return updated, nil
}

// CreateSession inserts a session row. The FK guarantees the owning user
// exists at creation time.
func (s *Store) CreateSession(ctx context.Context, session models.SessionToken) error {
	const query = `
	INSERT INTO session_tokens (token, user_id, expires_at)
	VALUES ($1, $2, $3);
	`
	if _, err := s.pool.Exec(ctx, query, session.Token, session.UserID, session.ExpiresAt); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindSession fetches a session by its token value. Expired rows are still
// returned; expiry is the caller's check.
func (s *Store) FindSession(ctx context.Context, token string) (models.SessionToken, error) {
	const query = `
	SELECT token, user_id, expires_at, created_at
	FROM session_tokens
	WHERE token = $1;
	`
	var session models.SessionToken
	err := s.pool.QueryRow(ctx, query, token).Scan(&session.Token, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SessionToken{}, storage.ErrNotFound
		}
		return models.SessionToken{}, err
	}
	return session, nil
}

// AddConversion records one resolved rate lookup for a user.
func (s *Store) AddConversion(ctx context.Context, record models.ConversionRecord) error {
	const query = `
	INSERT INTO currency_queries (user_id, base_currency, target_currency, exchange_rate)
	VALUES ($1, $2, $3, $4);
	`
	_, err := s.pool.Exec(ctx, query, record.UserID, record.BaseCurrency, record.TargetCurrency, record.ExchangeRate)
	return err
}

// ListConversions returns a user's conversion records, newest first.
func (s *Store) ListConversions(ctx context.Context, userID string) ([]models.ConversionRecord, error) {
	const query = `
	SELECT id, user_id, base_currency, target_currency, exchange_rate, created_at
	FROM currency_queries
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC;
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ConversionRecord
	for rows.Next() {
		var rec models.ConversionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.BaseCurrency, &rec.TargetCurrency, &rec.ExchangeRate, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	var role string
	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	user.Role = models.Role(role)
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
