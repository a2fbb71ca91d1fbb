package gatewaytest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sadopc/studydesk/internal/gateway"
	"github.com/sadopc/studydesk/internal/model"
)

// NewServer serves f over the gateway REST contract. The server is closed
// by the caller.
func NewServer(f *Fake) *httptest.Server {
	return httptest.NewServer(Router(f))
}

func Router(f *Fake) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", func(w http.ResponseWriter, r *http.Request) {
			tasks, err := f.ListTasks(r.Context())
			respond(w, tasks, err)
		})
		r.Post("/tasks", func(w http.ResponseWriter, r *http.Request) {
			var t model.Task
			if !decode(w, r, &t) {
				return
			}
			respondCreated(w, f.CreateTask(r.Context(), t))
		})
		r.Put("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
			var t model.Task
			if !decode(w, r, &t) {
				return
			}
			t.ID = model.ID(chi.URLParam(r, "id"))
			respond(w, nil, f.UpdateTask(r.Context(), t))
		})
		r.Delete("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
			respond(w, nil, f.DeleteTask(r.Context(), model.ID(chi.URLParam(r, "id"))))
		})

		r.Get("/notes", func(w http.ResponseWriter, r *http.Request) {
			if q := r.URL.Query().Get("search"); q != "" {
				notes, err := f.SearchNotes(r.Context(), q)
				respond(w, notes, err)
				return
			}
			notes, err := f.ListNotes(r.Context())
			respond(w, notes, err)
		})
		r.Post("/notes", func(w http.ResponseWriter, r *http.Request) {
			var n model.Note
			if !decode(w, r, &n) {
				return
			}
			respondCreated(w, f.CreateNote(r.Context(), n))
		})
		r.Put("/notes/{id}", func(w http.ResponseWriter, r *http.Request) {
			var n model.Note
			if !decode(w, r, &n) {
				return
			}
			n.ID = model.ID(chi.URLParam(r, "id"))
			respond(w, nil, f.UpdateNote(r.Context(), n))
		})
		r.Delete("/notes/{id}", func(w http.ResponseWriter, r *http.Request) {
			respond(w, nil, f.DeleteNote(r.Context(), model.ID(chi.URLParam(r, "id"))))
		})

		r.Get("/timer/settings", func(w http.ResponseWriter, r *http.Request) {
			if err := f.enter("GetTimerConfig"); err != nil {
				f.mu.Unlock()
				respond(w, nil, err)
				return
			}
			cfg := f.config
			f.mu.Unlock()
			// An unsaved config is served as JSON null.
			respond(w, cfg, nil)
		})
		r.Put("/timer/settings", func(w http.ResponseWriter, r *http.Request) {
			var cfg model.TimerConfig
			if !decode(w, r, &cfg) {
				return
			}
			respond(w, nil, f.UpdateTimerConfig(r.Context(), cfg))
		})

		r.Post("/timer/sessions", func(w http.ResponseWriter, r *http.Request) {
			var s model.TimerSession
			if !decode(w, r, &s) {
				return
			}
			respondCreated(w, f.CreateSession(r.Context(), s))
		})
		r.Get("/timer/sessions", func(w http.ResponseWriter, r *http.Request) {
			sessions, err := f.ListSessions(r.Context(), r.URL.Query().Get("date"))
			respond(w, sessions, err)
		})
	})
	return r
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respondCreated(w http.ResponseWriter, err error) {
	if err != nil {
		respond(w, nil, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func respond(w http.ResponseWriter, body any, err error) {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if body == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}
