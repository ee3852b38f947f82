package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"eisen/internal/grouping"
	"eisen/internal/model"
	"eisen/internal/speech"
	"eisen/internal/tasks"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Repo    *tasks.Repository
	Grouper *grouping.Grouper
	// Synth may be nil; audio routes then answer 503.
	Synth speech.Synthesizer
	Log   *slog.Logger

	// Voice used when the request carries no voice cookie.
	DefaultLocale string
	DefaultSlow   bool
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	hub  *resourceHub
	log  *slog.Logger

	similar similarCache
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Repo == nil {
		return nil, errors.New("web: repository is nil")
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Grouper == nil {
		cfg.Grouper = grouping.NewGrouper(nil, 0, cfg.Log)
	}
	cfg.DefaultLocale = speech.NormalizeLocale(cfg.DefaultLocale)

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim":     strings.TrimSpace,
		"markdown": renderMarkdownHTML,
		"short":    shortID,
		"joinTags": model.JoinTags,
		"inc":      func(i int) int { return i + 1 },
		"tagAnchor": tagAnchor,
		"newTaskFields": func(tags []string) editVM {
			return editVM{Tags: tags, Selected: map[string]bool{}}
		},
		"quadrantClass": func(q model.Quadrant) string {
			return strings.ReplaceAll(strings.ToLower(string(q)), " ", "-")
		},
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{cfg: cfg, tmpl: tmpl, hub: newResourceHub(), log: cfg.Log}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /matrix", s.handleMatrix)
	mux.HandleFunc("POST /tasks", s.handleTaskCreate)
	mux.HandleFunc("GET /tasks/{id}/edit", s.handleTaskEditForm)
	mux.HandleFunc("POST /tasks/{id}/edit", s.handleTaskEdit)
	mux.HandleFunc("POST /tasks/{id}/done", s.handleTaskDone)
	mux.HandleFunc("GET /ivy-lee", s.handleIvyLee)
	mux.HandleFunc("GET /groups", s.handleGroups)
	mux.HandleFunc("POST /groups/similar", s.handleSimilarGroups)
	mux.HandleFunc("GET /tags", s.handleTags)
	mux.HandleFunc("POST /tags", s.handleTagCreate)
	mux.HandleFunc("POST /tags/delete", s.handleTagDelete)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /summary.mp3", s.handleSummaryAudio)
	mux.HandleFunc("POST /voice", s.handleVoice)
	return mux
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	ref := strings.TrimSpace(r.Header.Get("Referer"))
	if ref != "" {
		http.Redirect(w, r, ref, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		s.log.Error("render template", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// writeError maps domain errors to a status: unknown ids 404, other user
// mistakes 400, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var nf tasks.NotFoundError
	switch {
	case errors.As(err, &nf):
		http.Error(w, err.Error(), http.StatusNotFound)
	case tasks.IsUserError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
