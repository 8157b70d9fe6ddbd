package http

import "github.com/taskflow-hq/taskflow-backend/internal/issues"

// Handler bundles the dependencies for issue HTTP endpoints.
type Handler struct {
	svc *issues.Service
}

func New(svc *issues.Service) *Handler {
	return &Handler{svc: svc}
}
