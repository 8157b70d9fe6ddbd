package http

import "github.com/taskflow-hq/taskflow-backend/internal/projects"

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	svc *projects.Service
}

func New(svc *projects.Service) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

type addMemberReq struct {
	UserID string `json:"userId"`
}
