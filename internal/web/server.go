// Package web serves the assessment as a four-page web flow backed by per-client sessions.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/prtassess/internal/assessment"
	"github.com/dshills/prtassess/internal/gauge"
	"github.com/dshills/prtassess/internal/logging"
	"github.com/dshills/prtassess/internal/questions"
	"github.com/dshills/prtassess/internal/record"
	"github.com/dshills/prtassess/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultCookieName is used when Config.CookieName is empty.
const DefaultCookieName = "prt_session"

// Config wires a Server's dependencies.
type Config struct {
	Set        *questions.Set
	Recorder   *record.Recorder
	Sessions   session.Store
	Logger     *slog.Logger
	CookieName string
	Now        func() time.Time
}

// Server handles the start, question, results and restart routes.
type Server struct {
	set      *questions.Set
	recorder *record.Recorder
	sessions session.Store
	log      *slog.Logger
	cookie   string
	now      func() time.Time
	pages    map[string]*template.Template
}

// New validates cfg and parses the page templates.
func New(cfg Config) (*Server, error) {
	if cfg.Set == nil || cfg.Set.Len() == 0 {
		return nil, fmt.Errorf("web.New: %w", assessment.ErrNoQuestions)
	}
	if cfg.Recorder == nil {
		cfg.Recorder = record.NewRecorder("")
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"index", "question", "results"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("web.New: parse %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Server{
		set:      cfg.Set,
		recorder: cfg.Recorder,
		sessions: cfg.Sessions,
		log:      cfg.Logger,
		cookie:   cfg.CookieName,
		now:      cfg.Now,
		pages:    pages,
	}, nil
}

// Handler returns the routed, logged HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStart)
	mux.HandleFunc("GET /question", s.handleQuestion)
	mux.HandleFunc("POST /question", s.handleAdvance)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /restart", s.handleRestart)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "ok")
	})
	return s.logRequests(mux)
}

// sessionID returns the client's session id, issuing a new cookie if it has none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.cookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// reset puts the session back at the first question with no answers.
func (s *Server) reset(ctx context.Context, id string) error {
	st, err := s.sessions.Load(ctx, id)
	if err != nil {
		return err
	}
	st.Reset()
	return s.sessions.Save(ctx, id, st)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	if err := s.reset(r.Context(), id); err != nil {
		s.fail(w, r, "reset session", err)
		return
	}
	s.render(w, r, http.StatusOK, "index", indexPage{
		Title:       s.set.Title,
		Description: s.set.Description,
		Total:       s.set.Len(),
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, r, "clear session", err)
		return
	}
	if err := s.reset(r.Context(), id); err != nil {
		s.fail(w, r, "reset session", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	st, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, r, "load session", err)
		return
	}
	if st.Complete(s.set.Len()) {
		http.Redirect(w, r, "/results", http.StatusFound)
		return
	}
	s.renderQuestion(w, r, http.StatusOK, st, "")
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	ctx := r.Context()
	st, err := s.sessions.Load(ctx, id)
	if err != nil {
		s.fail(w, r, "load session", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	answer, ok := assessment.ParseAnswer(r.PostForm.Get("answer"))
	if !ok {
		if st.Complete(s.set.Len()) {
			http.Redirect(w, r, "/results", http.StatusSeeOther)
			return
		}
		s.renderQuestion(w, r, http.StatusBadRequest, st, "Please answer yes or no.")
		return
	}

	done, err := st.Advance(answer, s.set.Len())
	if errors.Is(err, session.ErrComplete) {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.fail(w, r, "advance", err)
		return
	}
	if err := s.sessions.Save(ctx, id, st); err != nil {
		s.fail(w, r, "save session", err)
		return
	}
	s.log.Debug("answer recorded", "session", id, "cursor", st.Cursor, "answer", answer)

	if done {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/question", http.StatusSeeOther)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	ctx := r.Context()
	st, err := s.sessions.Load(ctx, id)
	if err != nil {
		s.fail(w, r, "load session", err)
		return
	}
	if !st.Complete(s.set.Len()) {
		http.Redirect(w, r, "/question", http.StatusFound)
		return
	}

	res, err := assessment.Evaluate(s.set.Len(), st.Answers)
	if err != nil {
		s.fail(w, r, "evaluate", err)
		return
	}
	png, err := gauge.Render(res.Percentage, res.Severity)
	if err != nil {
		s.fail(w, r, "render gauge", err)
		return
	}

	// One record per run; revisiting the page shows the same file.
	if st.RecordPath == "" {
		rec := record.New(s.set.Texts(), res, s.now())
		path, err := s.recorder.Save(rec, s.now())
		if err != nil {
			s.fail(w, r, "save record", err)
			return
		}
		st.RecordPath = path
		if err := s.sessions.Save(ctx, id, st); err != nil {
			s.fail(w, r, "save session", err)
			return
		}
		s.log.Info("assessment recorded", "session", id, "path", path,
			"score", res.Score, "percentage", res.Percentage, "severity", res.Severity)
	}

	levels := make([]level, 0, len(assessment.Severities))
	for _, e := range assessment.Explanations() {
		levels = append(levels, level{Name: e.Severity.Upper(), Color: template.CSS(gauge.Hex(e.Severity)), Text: e.Text})
	}
	s.render(w, r, http.StatusOK, "results", resultsPage{
		Title:       s.set.Title,
		Score:       res.Score,
		Total:       res.Total(),
		Percentage:  res.Percentage,
		Severity:    res.Severity.Upper(),
		Color:       template.CSS(gauge.Hex(res.Severity)),
		Explanation: res.Explanation,
		Image:       template.URL(gauge.DataURI(png)),
		Filename:    filepath.Base(st.RecordPath),
		Levels:      levels,
	})
}

func (s *Server) renderQuestion(w http.ResponseWriter, r *http.Request, status int, st *session.State, msg string) {
	s.render(w, r, status, "question", questionPage{
		Title:    s.set.Title,
		Number:   st.Cursor + 1,
		Total:    s.set.Len(),
		Question: s.set.At(st.Cursor),
		Error:    msg,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages[page].ExecuteTemplate(w, page+".html", data); err != nil {
		s.log.Error("render failed", "page", page, "path", r.URL.Path, "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error(op+" failed", "path", r.URL.Path, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

type indexPage struct {
	Title       string
	Description string
	Total       int
}

type questionPage struct {
	Title    string
	Number   int
	Total    int
	Question string
	Error    string
}

type level struct {
	Name  string
	Color template.CSS
	Text  string
}

type resultsPage struct {
	Title       string
	Score       int
	Total       int
	Percentage  float64
	Severity    string
	Color       template.CSS
	Explanation string
	Image       template.URL
	Filename    string
	Levels      []level
}
