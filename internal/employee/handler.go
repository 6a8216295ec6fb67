package employee

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, dto EmployeeDTO) (*Employee, error)
	Update(ctx context.Context, id int64, dto EmployeeDTO) (*Employee, error)
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "employee_id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	e, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto EmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "employee_id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	var dto EmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	e, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "employee_id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Employee deleted"})
}
