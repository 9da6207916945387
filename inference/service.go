// Package inference is the handler collaborator behind the httpd core:
// environment configuration, model loading with a dummy linear
// fallback, and the /health and /predict endpoints.
package inference

import (
	"encoding/json"

	"dqx0.com/go/inferd/httpd"
)

// Service holds the immutable per-process state the handlers need.
type Service struct {
	cfg   Config
	model Model
}

func NewService(cfg Config, m Model) *Service {
	return &Service{cfg: cfg, model: m}
}

// Register installs the service's routes. Call before the server
// starts accepting; the router is read-only afterwards.
func (s *Service) Register(r *httpd.Router) {
	r.Handle("/health", "GET", httpd.HandlerFunc(s.health))
	r.Handle("/predict", "OPTIONS", httpd.HandlerFunc(s.preflight))
	r.Handle("/predict", "POST", httpd.HandlerFunc(s.predict))
}

func (s *Service) health(*httpd.Request) *httpd.Response {
	return &httpd.Response{StatusCode: 200, Body: []byte("ok")}
}

func (s *Service) preflight(*httpd.Request) *httpd.Response {
	res := &httpd.Response{StatusCode: 204, Header: httpd.Header{}}
	s.cors(res.Header)
	return res
}

func (s *Service) predict(r *httpd.Request) *httpd.Response {
	var in struct {
		X json.RawMessage `json:"x"`
	}
	if err := json.Unmarshal(r.Body, &in); err != nil {
		return s.jsonError(400, "invalid json body")
	}
	// json.Unmarshal treats null as a no-op, so reject it explicitly.
	var x float64
	if len(in.X) == 0 || string(in.X) == "null" || json.Unmarshal(in.X, &x) != nil {
		return s.jsonError(400, "x must be a number")
	}

	y, note := s.model.Predict(x)
	out := map[string]any{"y": y}
	if note != "" {
		out["note"] = note
	}
	return s.json(200, out)
}

func (s *Service) json(status int, v any) *httpd.Response {
	body, err := json.Marshal(v)
	if err != nil {
		status = 500
		body = []byte(`{"error":"encoding failed"}`)
	}
	res := &httpd.Response{StatusCode: status, Header: httpd.Header{}, Body: body}
	res.Header.Set("Content-Type", "application/json")
	s.cors(res.Header)
	return res
}

func (s *Service) jsonError(status int, msg string) *httpd.Response {
	return s.json(status, map[string]string{"error": msg})
}

func (s *Service) cors(h httpd.Header) {
	if s.cfg.AllowOrigin != "" {
		h.Set("Access-Control-Allow-Origin", s.cfg.AllowOrigin)
	}
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}
