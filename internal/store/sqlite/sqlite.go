package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/antonkazakov/dmline-server/internal/store"
)

// schema is applied on open. Messages reference users by username, matching
// the wire identity; created_at is assigned by the store, not the client.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	from_user  TEXT NOT NULL REFERENCES users(username),
	to_user    TEXT NOT NULL REFERENCES users(username),
	content    TEXT NOT NULL,
	file_data  TEXT,
	file_name  TEXT,
	file_type  TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_users ON messages(from_user, to_user);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and ensures the schema exists.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply a custom schema.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== UserStore implementation ====

// CreateUser creates a new user with hashed password.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string) (*store.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES (?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.getUserByID(ctx, id)
}

func (s *SQLiteStore) getUserByID(ctx context.Context, id int64) (*store.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`
	var user store.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`
	var user store.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// UserExists reports whether a username is registered.
func (s *SQLiteStore) UserExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT 1 FROM users WHERE username = ?`

	var one int
	err := s.db.QueryRowContext(ctx, query, username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user existence: %w", err)
	}
	return true, nil
}

// ListUsers returns all users except the given one, ordered by username.
func (s *SQLiteStore) ListUsers(ctx context.Context, exceptUsername string) ([]*store.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username != ?
		ORDER BY username
	`
	rows, err := s.db.QueryContext(ctx, query, exceptUsername)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]*store.User, 0)
	for rows.Next() {
		var user store.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// ==== MessageStore implementation ====

// SaveMessage durably records a message and assigns its timestamp. The
// timestamp is taken here rather than via a column default so the caller
// gets back exactly what was written.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *store.Message) error {
	query := `
		INSERT INTO messages (from_user, to_user, content, file_data, file_name, file_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	createdAt := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, query,
		msg.FromUser,
		msg.ToUser,
		msg.Content,
		nullable(msg.FileData),
		nullable(msg.FileName),
		nullable(msg.FileType),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	msg.ID = id
	msg.CreatedAt = createdAt
	return nil
}

// ListConversation returns all messages exchanged between two users, in
// either direction, oldest first.
func (s *SQLiteStore) ListConversation(ctx context.Context, userA, userB string) ([]*store.Message, error) {
	query := `
		SELECT id, from_user, to_user, content,
		       COALESCE(file_data, ''), COALESCE(file_name, ''), COALESCE(file_type, ''),
		       created_at
		FROM messages
		WHERE (from_user = ? AND to_user = ?)
		   OR (from_user = ? AND to_user = ?)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userA, userB, userB, userA)
	if err != nil {
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	defer rows.Close()

	messages := make([]*store.Message, 0)
	for rows.Next() {
		var msg store.Message
		err := rows.Scan(
			&msg.ID,
			&msg.FromUser,
			&msg.ToUser,
			&msg.Content,
			&msg.FileData,
			&msg.FileName,
			&msg.FileType,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// nullable maps the empty string to NULL so absent attachment fields stay
// NULL in the table.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
