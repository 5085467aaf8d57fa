package database

import (
	"database/sql"

	"github.com/ozarkhomeloans/portal/pkg/models"
)

const mediaColumns = `id, filename, url, label, width, height, size_bytes, content_type, uploaded_at`

func scanMedia(row interface{ Scan(...interface{}) error }) (*models.MediaAsset, error) {
	m := &models.MediaAsset{}
	err := row.Scan(
		&m.ID, &m.Filename, &m.URL, &m.Label, &m.Width, &m.Height,
		&m.SizeBytes, &m.ContentType, &m.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// CreateMediaAsset inserts a new media record.
func (db *DB) CreateMediaAsset(m *models.MediaAsset) error {
	const q = `INSERT INTO media_assets (id, filename, url, label, width, height, size_bytes, content_type, uploaded_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q, m.ID, m.Filename, m.URL, m.Label, m.Width, m.Height, m.SizeBytes, m.ContentType, m.UploadedAt)
	return err
}

// GetMediaAsset returns a media record by ID.
func (db *DB) GetMediaAsset(id string) (*models.MediaAsset, error) {
	q := `SELECT ` + mediaColumns + ` FROM media_assets WHERE id = ?`
	return scanMedia(db.conn.QueryRow(q, id))
}

// ListMediaAssets returns media records newest first, optionally filtered by
// a case-insensitive substring match on filename or label.
func (db *DB) ListMediaAssets(query string) ([]models.MediaAsset, error) {
	q := `SELECT ` + mediaColumns + ` FROM media_assets`
	var args []interface{}
	if query != "" {
		q += ` WHERE filename LIKE ? COLLATE NOCASE OR label LIKE ? COLLATE NOCASE`
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	q += ` ORDER BY uploaded_at DESC`

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.MediaAsset
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *m)
	}
	return assets, rows.Err()
}

// UpdateMediaLabel sets the label on a media record.
func (db *DB) UpdateMediaLabel(id, label string) error {
	_, err := db.conn.Exec(`UPDATE media_assets SET label = ? WHERE id = ?`, label, id)
	return err
}

// DeleteMediaAsset removes a media record by ID.
func (db *DB) DeleteMediaAsset(id string) error {
	_, err := db.conn.Exec(`DELETE FROM media_assets WHERE id = ?`, id)
	return err
}
