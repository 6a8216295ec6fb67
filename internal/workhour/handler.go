package workhour

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*WorkHour, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*WorkHour, error)
	Get(ctx context.Context, id int64) (*WorkHour, error)
	Create(ctx context.Context, dto CreateWorkHourDTO) (*WorkHour, error)
	Delete(ctx context.Context, id int64) error
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

func (h *Handler) ListWorkHours(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) ListEmployeeWorkHours(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.PathID(r, "employee_id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	entries, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) GetWorkHour(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	entry, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) CreateWorkHour(w http.ResponseWriter, r *http.Request) {
	var dto CreateWorkHourDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	entry, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateWorkHour: service error", "error", err)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) DeleteWorkHour(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteWorkHour: service error", "error", err, "entry_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Work hour entry deleted"})
}
