package web

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"gradeflow/internal/config"
	"gradeflow/internal/extract"
	"gradeflow/internal/grading"
	"gradeflow/internal/providers"
	"gradeflow/internal/session"
)

const sessionCookie = "gradeflow_session"

type Server struct {
	cfg      config.Config
	svc      *grading.Service
	auth     Authorizer
	sessions session.Store
	tokens   *session.TokenCodec
	log      *slog.Logger
}

func NewServer(cfg config.Config, llm providers.LLMProvider, sessions session.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	return &Server{
		cfg:      cfg,
		svc:      grading.NewService(llm, cfg.OpenAIModel, log),
		auth:     NewPasswordAuthorizer(cfg.AccessPassword, cfg.AccessPasswordHash),
		sessions: sessions,
		tokens:   session.NewTokenCodec(cfg.SessionSecret),
		log:      log,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	// Two sequential upstream calls can block for a while each.
	r.Use(middleware.Timeout(3 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/", s.handleLoginPage)
	r.Post("/", s.handleLogin)
	r.Get("/grade", s.handleGradePage)
	r.Post("/grade", s.handleGradeSubmit)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

type loginData struct {
	Error string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "login.html", loginData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	password := strings.TrimSpace(r.FormValue("password"))
	if !s.auth.Authorize(password) {
		s.log.Warn("auth.denied", "remote", r.RemoteAddr)
		s.render(w, "login.html", loginData{Error: "Incorrect password."})
		return
	}

	sid := uuid.NewString()
	s.sessions.Put(sid, session.State{Authenticated: true})
	token, err := s.tokens.Issue(sid)
	if err != nil {
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/grade", http.StatusSeeOther)
}

type gradeData struct {
	Feedback     string
	SummaryText  string
	Error        string
	RubricLoaded bool
}

func (s *Server) handleGradePage(w http.ResponseWriter, r *http.Request) {
	_, st, ok := s.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "grade.html", gradeData{RubricLoaded: st.RubricText != ""})
}

func (s *Server) handleGradeSubmit(w http.ResponseWriter, r *http.Request) {
	sid, st, ok := s.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(int64(s.cfg.MaxUploadMB) << 20); err != nil {
		_ = r.ParseForm()
	}
	rubricText := strings.TrimSpace(r.FormValue("rubric_text"))
	studentText := strings.TrimSpace(r.FormValue("student_text"))

	var data gradeData

	if name, content, ok := formFile(r, "rubric_file"); ok {
		text, err := extract.Extract(name, content)
		if err != nil {
			data.Error = "Error reading uploaded files: " + err.Error()
		} else {
			rubricText = strings.TrimSpace(text)
		}
	}
	if data.Error == "" {
		if name, content, ok := formFile(r, "student_file"); ok {
			text, err := extract.Extract(name, content)
			if err != nil {
				data.Error = "Error reading uploaded files: " + err.Error()
			} else {
				studentText = strings.TrimSpace(text)
			}
		}
	}

	if data.Error == "" {
		// Only an explicitly supplied rubric replaces the cached one.
		if rubricText != "" {
			st.RubricText = rubricText
			s.sessions.Put(sid, st)
		}

		switch {
		case st.RubricText == "":
			data.Error = "Please provide a rubric (either text or file)."
		case studentText == "":
			data.Error = "Please provide student work (either text or file)."
		default:
			res, err := s.svc.Grade(r.Context(), st.RubricText, studentText)
			if err != nil {
				data.Error = "Error during AI grading: " + err.Error()
			} else {
				data.Feedback = res.TeacherReport
				data.SummaryText = res.SummaryText
			}
		}
	}

	data.RubricLoaded = st.RubricText != ""
	s.render(w, "grade.html", data)
}

// currentSession resolves the session cookie to stored state. Anything
// short of a valid token over an authenticated session reads as logged out.
func (s *Server) currentSession(r *http.Request) (string, session.State, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", session.State{}, false
	}
	sid, err := s.tokens.Parse(c.Value)
	if err != nil {
		return "", session.State{}, false
	}
	st, ok := s.sessions.Get(sid)
	if !ok || !st.Authenticated {
		return "", session.State{}, false
	}
	return sid, st, true
}

func formFile(r *http.Request, field string) (string, []byte, bool) {
	if r.MultipartForm == nil {
		return "", nil, false
	}
	f, fh, err := r.FormFile(field)
	if err != nil {
		return "", nil, false
	}
	defer f.Close()
	if fh.Filename == "" {
		return "", nil, false
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return "", nil, false
	}
	return fh.Filename, b, true
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("web.render_error", "template", name, "error", err)
	}
}
