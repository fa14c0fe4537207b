package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/climate-intel/internal/model"
)

// SQLiteStore implements Store on a local SQLite file. It is the default
// driver for development and single-node deployments.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and creates if needed) the database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// modernc.org/sqlite serializes access; a single connection avoids
	// SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: ping")
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS users (
	id                 TEXT PRIMARY KEY,
	email              TEXT UNIQUE,
	phone              TEXT UNIQUE,
	name               TEXT NOT NULL,
	password_hash      TEXT NOT NULL,
	preferred_language TEXT NOT NULL DEFAULT 'en',
	is_verified        INTEGER NOT NULL DEFAULT 0,
	otp                TEXT,
	otp_expires        TIMESTAMP,
	created_at         TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_history (
	id       TEXT PRIMARY KEY,
	user_id  TEXT NOT NULL REFERENCES users(id),
	message  TEXT NOT NULL,
	response TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT 'en',
	ts       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_history_user_id ON chat_history(user_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return eris.Wrap(s.db.Close(), "sqlite: close")
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, phone, name, password_hash, preferred_language, is_verified, otp, otp_expires, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, nullIfEmpty(user.Email), nullIfEmpty(user.Phone), user.Name,
		user.PasswordHash, user.PreferredLanguage, user.IsVerified,
		nullIfEmpty(user.OTP), user.OTPExpires, user.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert user")
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, phone, name, password_hash, preferred_language, is_verified, otp, otp_expires, created_at
		FROM users WHERE id = ?`, id)
	return scanUserSQL(row)
}

func (s *SQLiteStore) GetUserByIdentifier(ctx context.Context, email, phone string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, phone, name, password_hash, preferred_language, is_verified, otp, otp_expires, created_at
		FROM users WHERE (? <> '' AND email = ?) OR (? <> '' AND phone = ?)`,
		email, email, phone, phone)
	return scanUserSQL(row)
}

func (s *SQLiteStore) MarkUserVerified(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_verified = 1, otp = NULL, otp_expires = NULL WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: mark user verified %s", id)
	}
	return checkRowsAffected(res)
}

func (s *SQLiteStore) UpdateUserLanguage(ctx context.Context, id, language string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET preferred_language = ? WHERE id = ?`, language, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update user language %s", id)
	}
	return checkRowsAffected(res)
}

func (s *SQLiteStore) InsertChat(ctx context.Context, rec *model.ChatRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_history (id, user_id, message, response, language, ts)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Message, rec.Response, rec.Language, rec.Timestamp,
	)
	return eris.Wrap(err, "sqlite: insert chat")
}

func (s *SQLiteStore) ListChatHistory(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, message, response, language, ts
		FROM chat_history WHERE user_id = ? ORDER BY ts DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list chat history")
	}
	defer rows.Close()

	var records []model.ChatRecord
	for rows.Next() {
		var rec model.ChatRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Message, &rec.Response, &rec.Language, &rec.Timestamp); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan chat record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate chat history")
}

func scanUserSQL(row *sql.Row) (*model.User, error) {
	var u model.User
	var email, phone, otp sql.NullString
	var otpExpires sql.NullTime
	err := row.Scan(&u.ID, &email, &phone, &u.Name, &u.PasswordHash,
		&u.PreferredLanguage, &u.IsVerified, &otp, &otpExpires, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "sqlite: scan user")
	}
	u.Email = email.String
	u.Phone = phone.String
	u.OTP = otp.String
	if otpExpires.Valid {
		t := otpExpires.Time.UTC()
		u.OTPExpires = &t
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
