package main

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/models"
	"foodRecipesWebsite/internal/session"
	"foodRecipesWebsite/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// TemplateCache holds parsed page templates, each layered over base.html
type TemplateCache struct {
	fs        fs.FS
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateCache creates a new template cache over fsys
func NewTemplateCache(fsys fs.FS) *TemplateCache {
	return &TemplateCache{
		fs:        fsys,
		templates: make(map[string]*template.Template),
	}
}

// GetTemplate returns a cached template or parses it if not cached
func (tc *TemplateCache) GetTemplate(name string) (*template.Template, error) {
	tc.mutex.RLock()
	tmpl, exists := tc.templates[name]
	tc.mutex.RUnlock()

	if exists {
		return tmpl, nil
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tmpl, exists := tc.templates[name]; exists {
		return tmpl, nil
	}

	tmpl, err := template.New("").Funcs(CreateTemplateFuncMap()).
		ParseFS(tc.fs, "templates/base.html", "templates/"+name+".html")
	if err != nil {
		return nil, err
	}

	tc.templates[name] = tmpl
	return tmpl, nil
}

// Render executes the named page into a buffer, so a template error never
// leaves a half-written page.
func (tc *TemplateCache) Render(name string, data interface{}) ([]byte, error) {
	tmpl, err := tc.GetTemplate(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConditionalClass adds a CSS class conditionally
func ConditionalClass(baseClass, conditionalClass string, condition bool) string {
	if condition {
		return baseClass + " " + conditionalClass
	}
	return baseClass
}

// Truncate truncates a string to length runes
func Truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}

// CreateTemplateFuncMap creates a function map for templates
func CreateTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"conditionalClass": ConditionalClass,
		"truncate":         Truncate,
	}
}

// TemplateData is what every page template receives
type TemplateData struct {
	Title         string
	Authenticated bool
	User          *models.User
	Flashes       []Flash
	Error         string

	// Page-specific data
	PageData interface{}
}

// render writes page name with status. Session and flash fields are filled
// from the request.
func (app *App) render(w http.ResponseWriter, r *http.Request, name string, status int, data *TemplateData) {
	if s, ok := session.FromContext(r.Context()).Snapshot().(session.Authenticated); ok {
		data.Authenticated = true
		data.User = s.User
	}
	data.Flashes = append(data.Flashes, app.popFlashes(w, r)...)

	body, err := app.Templates.Render(name, data)
	if err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"template":   name,
			"request_id": utils.GetRequestID(r),
		}).WithError(err).Error("Failed to render template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(body)
}
