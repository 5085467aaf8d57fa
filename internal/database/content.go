package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ozarkhomeloans/portal/pkg/models"
)

// jsonColumn marshals a value for storage in a TEXT column.
func jsonColumn(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// --- Loan product operations ---

const productColumns = `id, name, slug, tagline, description, icon, highlights,
	down_payment, credit_score, best_for, display_order, is_active,
	primary_cta, secondary_cta, hero_image, intro, sections, requirements, faqs,
	created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.LoanProduct, error) {
	p := &models.LoanProduct{}
	var highlights, primaryCTA, secondaryCTA, sections, requirements, faqs string
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Tagline, &p.Description, &p.Icon, &highlights,
		&p.DownPayment, &p.CreditScore, &p.BestFor, &p.DisplayOrder, &p.IsActive,
		&primaryCTA, &secondaryCTA, &p.HeroImage, &p.Intro, &sections, &requirements, &faqs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for _, c := range []struct {
		raw string
		dst interface{}
	}{
		{highlights, &p.Highlights},
		{primaryCTA, &p.PrimaryCTA},
		{secondaryCTA, &p.SecondaryCTA},
		{sections, &p.Sections},
		{requirements, &p.Requirements},
		{faqs, &p.FAQs},
	} {
		if err := json.Unmarshal([]byte(c.raw), c.dst); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", p.ID, err)
		}
	}
	return p, nil
}

// CreateLoanProduct inserts a new loan product.
func (db *DB) CreateLoanProduct(p *models.LoanProduct) error {
	const q = `INSERT INTO loan_products (id, name, slug, tagline, description, icon, highlights,
	           down_payment, credit_score, best_for, display_order, is_active,
	           primary_cta, secondary_cta, hero_image, intro, sections, requirements, faqs,
	           created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q,
		p.ID, p.Name, p.Slug, p.Tagline, p.Description, p.Icon, jsonColumn(p.Highlights),
		p.DownPayment, p.CreditScore, p.BestFor, p.DisplayOrder, p.IsActive,
		jsonColumn(p.PrimaryCTA), jsonColumn(p.SecondaryCTA),
		p.HeroImage, p.Intro, jsonColumn(p.Sections), jsonColumn(p.Requirements), jsonColumn(p.FAQs),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetLoanProduct returns a product by ID.
func (db *DB) GetLoanProduct(id string) (*models.LoanProduct, error) {
	q := `SELECT ` + productColumns + ` FROM loan_products WHERE id = ?`
	return scanProduct(db.conn.QueryRow(q, id))
}

// GetLoanProductBySlug returns a product by its public slug.
func (db *DB) GetLoanProductBySlug(slug string) (*models.LoanProduct, error) {
	q := `SELECT ` + productColumns + ` FROM loan_products WHERE slug = ?`
	return scanProduct(db.conn.QueryRow(q, slug))
}

// ListLoanProducts returns products ordered by display order. When activeOnly
// is set, drafts and disabled products are excluded.
func (db *DB) ListLoanProducts(activeOnly bool) ([]models.LoanProduct, error) {
	q := `SELECT ` + productColumns + ` FROM loan_products`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY display_order, created_at`

	rows, err := db.conn.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.LoanProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// UpdateLoanProduct updates an existing product.
func (db *DB) UpdateLoanProduct(p *models.LoanProduct) error {
	const q = `UPDATE loan_products SET name = ?, slug = ?, tagline = ?, description = ?, icon = ?,
	           highlights = ?, down_payment = ?, credit_score = ?, best_for = ?,
	           display_order = ?, is_active = ?, primary_cta = ?, secondary_cta = ?,
	           hero_image = ?, intro = ?, sections = ?, requirements = ?, faqs = ?, updated_at = ?
	           WHERE id = ?`
	_, err := db.conn.Exec(q,
		p.Name, p.Slug, p.Tagline, p.Description, p.Icon,
		jsonColumn(p.Highlights), p.DownPayment, p.CreditScore, p.BestFor,
		p.DisplayOrder, p.IsActive, jsonColumn(p.PrimaryCTA), jsonColumn(p.SecondaryCTA),
		p.HeroImage, p.Intro, jsonColumn(p.Sections), jsonColumn(p.Requirements), jsonColumn(p.FAQs),
		time.Now(), p.ID,
	)
	return err
}

// DeleteLoanProduct removes a product by ID.
func (db *DB) DeleteLoanProduct(id string) error {
	_, err := db.conn.Exec(`DELETE FROM loan_products WHERE id = ?`, id)
	return err
}

// DisplayOrderUpdate is one entry of a wholesale reorder write.
type DisplayOrderUpdate struct {
	ID           string `json:"id"`
	DisplayOrder int    `json:"display_order"`
}

// ReorderLoanProducts persists new display_order values in one transaction.
// Last write wins; there is no conflict detection between concurrent admins.
func (db *DB) ReorderLoanProducts(updates []DisplayOrderUpdate) error {
	return db.reorder(`UPDATE loan_products SET display_order = ?, updated_at = ? WHERE id = ?`, updates)
}

// ReorderLoanPageWidgets persists new display_order values in one transaction.
func (db *DB) ReorderLoanPageWidgets(updates []DisplayOrderUpdate) error {
	return db.reorder(`UPDATE loan_page_widgets SET display_order = ?, updated_at = ? WHERE id = ?`, updates)
}

func (db *DB) reorder(query string, updates []DisplayOrderUpdate) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	now := time.Now()
	for _, u := range updates {
		if _, err := tx.Exec(query, u.DisplayOrder, now, u.ID); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// --- Loan page widget operations ---

const widgetColumns = `id, title, body, icon, placement, display_order, is_active, created_at, updated_at`

func scanWidget(row interface{ Scan(...interface{}) error }) (*models.LoanPageWidget, error) {
	w := &models.LoanPageWidget{}
	err := row.Scan(
		&w.ID, &w.Title, &w.Body, &w.Icon, &w.Placement,
		&w.DisplayOrder, &w.IsActive, &w.CreatedAt, &w.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return w, err
}

// CreateLoanPageWidget inserts a new widget.
func (db *DB) CreateLoanPageWidget(w *models.LoanPageWidget) error {
	const q = `INSERT INTO loan_page_widgets (id, title, body, icon, placement, display_order, is_active, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q, w.ID, w.Title, w.Body, w.Icon, w.Placement, w.DisplayOrder, w.IsActive, w.CreatedAt, w.UpdatedAt)
	return err
}

// GetLoanPageWidget returns a widget by ID.
func (db *DB) GetLoanPageWidget(id string) (*models.LoanPageWidget, error) {
	q := `SELECT ` + widgetColumns + ` FROM loan_page_widgets WHERE id = ?`
	return scanWidget(db.conn.QueryRow(q, id))
}

// ListLoanPageWidgets returns widgets ordered by display order.
func (db *DB) ListLoanPageWidgets(activeOnly bool) ([]models.LoanPageWidget, error) {
	q := `SELECT ` + widgetColumns + ` FROM loan_page_widgets`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY display_order, created_at`

	rows, err := db.conn.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var widgets []models.LoanPageWidget
	for rows.Next() {
		w, err := scanWidget(rows)
		if err != nil {
			return nil, err
		}
		widgets = append(widgets, *w)
	}
	return widgets, rows.Err()
}

// UpdateLoanPageWidget updates an existing widget.
func (db *DB) UpdateLoanPageWidget(w *models.LoanPageWidget) error {
	const q = `UPDATE loan_page_widgets SET title = ?, body = ?, icon = ?, placement = ?,
	           display_order = ?, is_active = ?, updated_at = ? WHERE id = ?`
	_, err := db.conn.Exec(q, w.Title, w.Body, w.Icon, w.Placement, w.DisplayOrder, w.IsActive, time.Now(), w.ID)
	return err
}

// DeleteLoanPageWidget removes a widget by ID.
func (db *DB) DeleteLoanPageWidget(id string) error {
	_, err := db.conn.Exec(`DELETE FROM loan_page_widgets WHERE id = ?`, id)
	return err
}
