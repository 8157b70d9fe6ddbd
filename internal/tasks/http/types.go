package http

import "github.com/taskflow-hq/taskflow-backend/internal/tasks"

// Handler bundles the dependencies for task HTTP endpoints.
type Handler struct {
	svc *tasks.Service
}

func New(svc *tasks.Service) *Handler {
	return &Handler{svc: svc}
}

type statusReq struct {
	Status string `json:"status"`
}
