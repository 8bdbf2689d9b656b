package api

import "net/http"

const landingPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <title>Instagram Tools API</title>
  <style>
    body { margin: 2rem auto; max-width: 40rem; font-family: sans-serif; color: #222; }
    code { background: #f4f6f8; padding: 0.1rem 0.3rem; border-radius: 3px; }
    li { margin: 0.4rem 0; }
  </style>
</head>
<body>
<h1>Instagram Tools API</h1>
<p>All endpoints accept a JSON body and answer with
<code>{"success": true, "data": ...}</code> or
<code>{"success": false, "error": "..."}</code>.</p>
<ul>
  <li><code>POST /api/download</code> — <code>{"url": "..."}</code></li>
  <li><code>POST /api/stories</code> — <code>{"username": "..."}</code></li>
  <li><code>POST /api/search/users</code> — <code>{"query": "..."}</code></li>
  <li><code>POST /api/search/hashtags</code> — <code>{"query": "..."}</code></li>
  <li><code>POST /api/stalk</code> — <code>{"username": "..."}</code></li>
  <li><code>GET /health</code></li>
  <li><code>GET /metrics</code></li>
</ul>
</body>
</html>`

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(landingPage))
}
