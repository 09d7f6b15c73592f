package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"ops-assistant/internal/application/port/input"
	"ops-assistant/internal/domain/entity"
)

const maxRequestBytes = 1 << 20

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Ops Assistant</title></head>
<body>
<h1>Ops Assistant</h1>
<form id="task-form">
  <textarea name="task" rows="3" cols="70" placeholder="Find trending Go repositories and summarize them"></textarea>
  <br>
  <button type="submit">Run</button>
</form>
<pre id="result"></pre>
<script>
document.getElementById('task-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const out = document.getElementById('result');
  out.textContent = 'Running...';
  const resp = await fetch('/api/tasks', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({task: e.target.task.value})
  });
  out.textContent = JSON.stringify(await resp.json(), null, 2);
});
</script>
</body>
</html>
`

type taskRequest struct {
	Task string `json:"task"`
}

func newRouter(pipeline input.Pipeline, taskTimeout time.Duration) http.Handler {
	logger := httplog.NewLogger("ops-assistant", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", serveIndex)
	r.Get("/healthz", serveHealth)
	r.Post("/api/tasks", runTask(pipeline, taskTimeout))

	return r
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func runTask(pipeline input.Pipeline, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be JSON with a task field")
			return
		}
		task := strings.TrimSpace(req.Task)
		if task == "" {
			writeError(w, http.StatusBadRequest, "task must not be empty")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		result, err := pipeline.Run(ctx, task)
		if err != nil {
			// A planning failure is an upstream model problem, not ours.
			var planErr *entity.PlanGenerationError
			if errors.As(err, &planErr) {
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
