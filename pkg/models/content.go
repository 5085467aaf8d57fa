package models

import "time"

// ButtonSpec describes a call-to-action button on a public page.
type ButtonSpec struct {
	Text  string `json:"text"`
	Link  string `json:"link"`
	Style string `json:"style"`
}

// ArticleSection is one ordered section of a loan program article.
type ArticleSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// FAQ is a question/answer pair on a loan program page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LoanProduct is a loan program listed on the public loans page.
// Highlights, Sections, Requirements, and FAQs keep their array order.
type LoanProduct struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Tagline      string     `json:"tagline"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Highlights   []string   `json:"highlights"`
	DownPayment  string     `json:"down_payment"`
	CreditScore  string     `json:"credit_score"`
	BestFor      string     `json:"best_for"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	PrimaryCTA   ButtonSpec `json:"primary_cta"`
	SecondaryCTA ButtonSpec `json:"secondary_cta"`

	// Optional long-form article content for the detail page.
	HeroImage    string           `json:"hero_image"`
	Intro        string           `json:"intro"`
	Sections     []ArticleSection `json:"sections"`
	Requirements []string         `json:"requirements"`
	FAQs         []FAQ            `json:"faqs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoanPageWidget is an admin-editable content block on the loans page.
type LoanPageWidget struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Icon         string    `json:"icon"`
	Placement    string    `json:"placement"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoanPageSettings is the singleton hero/intro configuration for the loans page.
type LoanPageSettings struct {
	HeroTitle    string `json:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle"`
	HeroImage    string `json:"hero_image"`
	IntroHeading string `json:"intro_heading"`
	IntroBody    string `json:"intro_body"`
	CTAText      string `json:"cta_text"`
	CTALink      string `json:"cta_link"`
}

// MenuItem is one entry of the site navigation. Array order is display order.
type MenuItem struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	URL           string `json:"url"`
	ShowDesktop   bool   `json:"show_desktop"`
	ShowMobileBar bool   `json:"show_mobile_bar"`
	ShowHamburger bool   `json:"show_hamburger"`
	Enabled       bool   `json:"enabled"`
	NewTab        bool   `json:"new_tab"`
}

// MobileButton is one entry of the mobile action bar. Array order is display order.
type MobileButton struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	URL     string `json:"url"`
	Icon    string `json:"icon"`
	Enabled bool   `json:"enabled"`
	NewTab  bool   `json:"new_tab"`
}

// MediaAsset is an uploaded file tracked by the media registry.
type MediaAsset struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	Label       string    `json:"label"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
