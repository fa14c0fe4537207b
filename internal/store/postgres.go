package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-intel/internal/db"
	"github.com/sells-group/climate-intel/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32
	MinConns int32
}

// preparedStatements lists queries to prepare on each new connection for
// the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_user": `INSERT INTO users (id, email, phone, name, password_hash, preferred_language, is_verified, otp, otp_expires, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
	"get_user_by_id": `SELECT id, email, phone, name, password_hash, preferred_language, is_verified, otp, otp_expires, created_at
		FROM users WHERE id = $1`,
	"mark_user_verified":   `UPDATE users SET is_verified = TRUE, otp = NULL, otp_expires = NULL WHERE id = $1`,
	"update_user_language": `UPDATE users SET preferred_language = $1 WHERE id = $2`,
	"insert_chat": `INSERT INTO chat_history (id, user_id, message, response, language, ts)
		VALUES ($1, $2, $3, $4, $5, $6)`,
	"list_chat_history": `SELECT id, user_id, message, response, language, ts
		FROM chat_history WHERE user_id = $1 ORDER BY ts DESC LIMIT $2`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS users (
	id                 TEXT PRIMARY KEY,
	email              TEXT UNIQUE,
	phone              TEXT UNIQUE,
	name               TEXT NOT NULL,
	password_hash      TEXT NOT NULL,
	preferred_language TEXT NOT NULL DEFAULT 'en',
	is_verified        BOOLEAN NOT NULL DEFAULT FALSE,
	otp                TEXT,
	otp_expires        TIMESTAMPTZ,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS chat_history (
	id       TEXT PRIMARY KEY,
	user_id  TEXT NOT NULL REFERENCES users(id),
	message  TEXT NOT NULL,
	response TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT 'en',
	ts       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone);
CREATE INDEX IF NOT EXISTS idx_chat_history_user_id ON chat_history(user_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.pool.Exec(ctx, preparedStatements["insert_user"],
		user.ID, nullIfEmpty(user.Email), nullIfEmpty(user.Phone), user.Name,
		user.PasswordHash, user.PreferredLanguage, user.IsVerified,
		nullIfEmpty(user.OTP), user.OTPExpires, user.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert user")
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := s.pool.QueryRow(ctx, preparedStatements["get_user_by_id"], id)
	return scanUser(row)
}

func (s *PostgresStore) GetUserByIdentifier(ctx context.Context, email, phone string) (*model.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, phone, name, password_hash, preferred_language, is_verified, otp, otp_expires, created_at
		FROM users WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2)`,
		email, phone,
	)
	return scanUser(row)
}

func (s *PostgresStore) MarkUserVerified(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, preparedStatements["mark_user_verified"], id)
	if err != nil {
		return eris.Wrapf(err, "postgres: mark user verified %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateUserLanguage(ctx context.Context, id, language string) error {
	tag, err := s.pool.Exec(ctx, preparedStatements["update_user_language"], language, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: update user language %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) InsertChat(ctx context.Context, rec *model.ChatRecord) error {
	_, err := s.pool.Exec(ctx, preparedStatements["insert_chat"],
		rec.ID, rec.UserID, rec.Message, rec.Response, rec.Language, rec.Timestamp,
	)
	return eris.Wrap(err, "postgres: insert chat")
}

func (s *PostgresStore) ListChatHistory(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error) {
	rows, err := s.pool.Query(ctx, preparedStatements["list_chat_history"], userID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list chat history")
	}
	defer rows.Close()

	var records []model.ChatRecord
	for rows.Next() {
		var rec model.ChatRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Message, &rec.Response, &rec.Language, &rec.Timestamp); err != nil {
			return nil, eris.Wrap(err, "postgres: scan chat record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate chat history")
}

// scanUser scans a user row, mapping nullable columns back to zero values.
func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var email, phone, otp *string
	err := row.Scan(&u.ID, &email, &phone, &u.Name, &u.PasswordHash,
		&u.PreferredLanguage, &u.IsVerified, &otp, &u.OTPExpires, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "postgres: scan user")
	}
	u.Email = deref(email)
	u.Phone = deref(phone)
	u.OTP = deref(otp)
	return &u, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
