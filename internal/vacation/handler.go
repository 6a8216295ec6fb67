package vacation

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Vacation, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*Vacation, error)
	Get(ctx context.Context, id int64) (*Vacation, error)
	Create(ctx context.Context, dto CreateVacationDTO) (*Vacation, error)
	UpdateStatus(ctx context.Context, id int64, dto UpdateVacationDTO) (*Vacation, error)
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

func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	vacations, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, vacations)
}

func (h *Handler) ListEmployeeVacations(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.PathID(r, "employee_id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	vacations, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, vacations)
}

func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	v, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var dto CreateVacationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	v, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateVacation: service error", "error", err)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) UpdateVacation(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	var dto UpdateVacationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	v, err := h.Service.UpdateStatus(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateVacation: service error", "error", err, "vacation_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}
