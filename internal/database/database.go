package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ozarkhomeloans/portal/pkg/models"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database and runs migrations.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer, many readers.
	conn.SetMaxOpenConns(1)

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they do not exist.
func migrate(conn *sql.DB) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT UNIQUE NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user',
		password_hash TEXT NOT NULL,
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL,
		last_login_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

	CREATE TABLE IF NOT EXISTS settings (
		name       TEXT PRIMARY KEY,
		document   TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS loan_products (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		slug          TEXT UNIQUE NOT NULL,
		tagline       TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		icon          TEXT NOT NULL DEFAULT '',
		highlights    TEXT NOT NULL DEFAULT '[]',
		down_payment  TEXT NOT NULL DEFAULT '',
		credit_score  TEXT NOT NULL DEFAULT '',
		best_for      TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active     INTEGER NOT NULL DEFAULT 1,
		primary_cta   TEXT NOT NULL DEFAULT '{}',
		secondary_cta TEXT NOT NULL DEFAULT '{}',
		hero_image    TEXT NOT NULL DEFAULT '',
		intro         TEXT NOT NULL DEFAULT '',
		sections      TEXT NOT NULL DEFAULT '[]',
		requirements  TEXT NOT NULL DEFAULT '[]',
		faqs          TEXT NOT NULL DEFAULT '[]',
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_loan_products_order ON loan_products(display_order);

	CREATE TABLE IF NOT EXISTS loan_page_widgets (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		body          TEXT NOT NULL DEFAULT '',
		icon          TEXT NOT NULL DEFAULT '',
		placement     TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active     INTEGER NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS media_assets (
		id           TEXT PRIMARY KEY,
		filename     TEXT NOT NULL,
		url          TEXT NOT NULL,
		label        TEXT NOT NULL DEFAULT '',
		width        INTEGER NOT NULL DEFAULT 0,
		height       INTEGER NOT NULL DEFAULT 0,
		size_bytes   INTEGER NOT NULL DEFAULT 0,
		content_type TEXT NOT NULL DEFAULT '',
		uploaded_at  DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS giveaways (
		id                  TEXT PRIMARY KEY,
		title               TEXT NOT NULL,
		slug                TEXT UNIQUE NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		rules               TEXT NOT NULL DEFAULT '',
		prize_title         TEXT NOT NULL DEFAULT '',
		prize_value         REAL,
		prize_description   TEXT NOT NULL DEFAULT '',
		prize_images        TEXT NOT NULL DEFAULT '[]',
		start_date          DATETIME,
		end_date            DATETIME,
		drawing_date        DATETIME,
		num_winners         INTEGER NOT NULL DEFAULT 1,
		alternate_winners   INTEGER NOT NULL DEFAULT 0,
		alternate_selection TEXT NOT NULL DEFAULT '',
		require_w9          INTEGER NOT NULL DEFAULT 0,
		w9_threshold        REAL NOT NULL DEFAULT 600,
		restricted_states   TEXT NOT NULL DEFAULT '[]',
		entry_type          TEXT NOT NULL DEFAULT 'both',
		bonus_entries       INTEGER NOT NULL DEFAULT 0,
		require_id          INTEGER NOT NULL DEFAULT 0,
		delivery_method     TEXT NOT NULL DEFAULT '',
		button_text         TEXT NOT NULL DEFAULT '',
		button_style        TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'draft',
		created_at          DATETIME NOT NULL,
		updated_at          DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS giveaway_winners (
		id             TEXT PRIMARY KEY,
		giveaway_id    TEXT NOT NULL REFERENCES giveaways(id) ON DELETE CASCADE,
		entry_id       TEXT NOT NULL DEFAULT '',
		winner_type    TEXT NOT NULL DEFAULT 'primary',
		status         TEXT NOT NULL DEFAULT 'pending',
		claim_token    TEXT UNIQUE NOT NULL,
		claim_deadline DATETIME,
		claimed_at     DATETIME,
		created_at     DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_winners_giveaway ON giveaway_winners(giveaway_id);

	CREATE TABLE IF NOT EXISTS prize_claims (
		id                 TEXT PRIMARY KEY,
		winner_id          TEXT UNIQUE NOT NULL REFERENCES giveaway_winners(id) ON DELETE CASCADE,
		legal_name         TEXT NOT NULL,
		address_line1      TEXT NOT NULL,
		address_line2      TEXT NOT NULL DEFAULT '',
		city               TEXT NOT NULL,
		state              TEXT NOT NULL,
		zip_code           TEXT NOT NULL,
		w9_document_url    TEXT NOT NULL DEFAULT '',
		id_document_url    TEXT NOT NULL DEFAULT '',
		verified           INTEGER NOT NULL DEFAULT 0,
		fulfillment_status TEXT NOT NULL DEFAULT 'pending',
		created_at         DATETIME NOT NULL
	);
	`
	_, err := conn.Exec(ddl)
	return err
}

// --- User operations ---

const userColumns = `id, email, name, role, password_hash, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// CreateUser inserts a new user.
func (db *DB) CreateUser(u *models.User) error {
	const q = `INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at, last_login_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q, u.ID, u.Email, u.Name, u.Role, u.PasswordHash, u.CreatedAt, u.UpdatedAt, u.LastLoginAt)
	return err
}

// GetUserByEmail looks up a user by email.
func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(db.conn.QueryRow(q, email))
}

// GetUserByID looks up a user by ID.
func (db *DB) GetUserByID(id string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(db.conn.QueryRow(q, id))
}

// UpdateUserRole sets the role for a user.
func (db *DB) UpdateUserRole(userID, role string) error {
	const q = `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`
	_, err := db.conn.Exec(q, role, time.Now(), userID)
	return err
}

// UpdateLastLogin sets the last_login_at timestamp.
func (db *DB) UpdateLastLogin(userID string, t time.Time) error {
	const q = `UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`
	_, err := db.conn.Exec(q, t, t, userID)
	return err
}

// --- Session operations ---

// CreateSession inserts a new session.
func (db *DB) CreateSession(s *models.Session) error {
	const q = `INSERT INTO sessions (id, user_id, expires_at, created_at, ip_address, user_agent)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q, s.ID, s.UserID, s.ExpiresAt, s.CreatedAt, s.IPAddress, s.UserAgent)
	return err
}

// GetSession looks up a session by ID and ensures it has not expired.
func (db *DB) GetSession(id string) (*models.Session, error) {
	const q = `SELECT id, user_id, expires_at, created_at, ip_address, user_agent
	           FROM sessions WHERE id = ? AND expires_at > ?`
	s := &models.Session{}
	err := db.conn.QueryRow(q, id, time.Now()).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.IPAddress, &s.UserAgent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// DeleteSession removes a session by ID.
func (db *DB) DeleteSession(id string) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// DeleteExpiredSessions cleans up sessions that have passed their expiry.
func (db *DB) DeleteExpiredSessions() error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, time.Now())
	return err
}

// --- Settings documents ---

// GetSetting returns the raw JSON document stored under name, or nil if the
// document has never been written.
func (db *DB) GetSetting(name string) ([]byte, error) {
	var doc string
	err := db.conn.QueryRow(`SELECT document FROM settings WHERE name = ?`, name).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// PutSetting stores a JSON document under name, replacing any prior value.
// Settings writes are last-write-wins; concurrent admin edits are accepted.
func (db *DB) PutSetting(name string, doc []byte) error {
	const q = `INSERT INTO settings (name, document, updated_at) VALUES (?, ?, ?)
	           ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`
	_, err := db.conn.Exec(q, name, string(doc), time.Now())
	return err
}
