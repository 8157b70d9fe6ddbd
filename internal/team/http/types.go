package http

import "github.com/taskflow-hq/taskflow-backend/internal/team"

// Handler bundles the dependencies for team HTTP endpoints.
type Handler struct {
	svc *team.Service
}

func New(svc *team.Service) *Handler {
	return &Handler{svc: svc}
}

type roleReq struct {
	Role string `json:"role"`
}
