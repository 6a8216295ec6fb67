package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	DepartmentCount(ctx context.Context) ([]DepartmentCount, error)
	AverageAge(ctx context.Context) (AverageAge, error)
	ChurnRate(ctx context.Context) (ChurnRate, error)
	AverageTenure(ctx context.Context) (AverageTenure, error)
	AverageHoursPerDepartment(ctx context.Context) ([]DepartmentHours, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI, lg *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) DepartmentCount(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.DepartmentCount(r.Context())
	h.respond(w, out, err)
}

func (h *Handler) AverageAge(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.AverageAge(r.Context())
	h.respond(w, out, err)
}

func (h *Handler) ChurnRate(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.ChurnRate(r.Context())
	h.respond(w, out, err)
}

func (h *Handler) AverageTenure(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.AverageTenure(r.Context())
	h.respond(w, out, err)
}

func (h *Handler) AverageHoursPerDepartment(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.AverageHoursPerDepartment(r.Context())
	h.respond(w, out, err)
}

func (h *Handler) respond(w http.ResponseWriter, out interface{}, err error) {
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, out)
}
