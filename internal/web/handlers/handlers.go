package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ozarkhomeloans/portal/config"
	"github.com/ozarkhomeloans/portal/internal/auth"
	"github.com/ozarkhomeloans/portal/internal/database"
	"github.com/ozarkhomeloans/portal/internal/notify"
	"github.com/ozarkhomeloans/portal/internal/token"
	"github.com/ozarkhomeloans/portal/internal/uploads"
	"github.com/ozarkhomeloans/portal/internal/web/templates"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db        *database.DB
	cfg       *config.Config
	auth      *auth.Service
	tokens    *token.Service
	uploads   *uploads.Store
	sms       notify.Sender
	templates map[string]*template.Template
}

// New creates a new handler with parsed templates.
func New(db *database.DB, cfg *config.Config, authService *auth.Service, tokenService *token.Service, uploadStore *uploads.Store, smsSender notify.Sender) *Handler {
	tmplMap := make(map[string]*template.Template)

	// Collect shared templates: base.html + all partials.
	shared := []string{"base.html"}
	partials, err := fs.Glob(templates.FS, "partials/*.html")
	if err != nil {
		log.Fatalf("Error globbing partials: %v", err)
	}
	shared = append(shared, partials...)

	for _, page := range []string{
		"loans.html", "loan_detail.html", "about.html",
		"claim.html", "notfound.html",
	} {
		files := make([]string, 0, len(shared)+1)
		files = append(files, shared...)
		files = append(files, page)

		tmplMap[page] = template.Must(
			template.New(page).ParseFS(templates.FS, files...),
		)
	}

	return &Handler{
		db:        db,
		cfg:       cfg,
		auth:      authService,
		tokens:    tokenService,
		uploads:   uploadStore,
		sms:       smsSender,
		templates: tmplMap,
	}
}

// AuthService returns the auth service instance.
func (h *Handler) AuthService() *auth.Service {
	return h.auth
}

// --- JSON envelope helpers ---

// envelope is the response shape shared by every /api endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func jsonData(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
}

func jsonCreated(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func jsonError(w http.ResponseWriter, message string, status int) {
	writeEnvelope(w, status, envelope{Success: false, Error: message})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return def
}

// generateToken returns an unguessable hex token for claim URLs.
func generateToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// Fallback: this should never happen.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}

// --- Template rendering ---

func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	tmpl, ok := h.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %s not found", name), http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// renderNotFound serves the dedicated not-found page.
func (h *Handler) renderNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	h.renderTemplate(w, "notfound.html", map[string]interface{}{
		"Title": "Page Not Found",
		"Year":  time.Now().Year(),
	})
}
