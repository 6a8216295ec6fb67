package department

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Department, error)
	Get(ctx context.Context, id int64) (*Department, error)
	Create(ctx context.Context, dto DepartmentDTO) (*Department, error)
	Update(ctx context.Context, id int64, dto DepartmentDTO) (*Department, error)
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

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListDepartments: service error", "error", err)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, departments)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	d, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var dto DepartmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	d, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateDepartment: service error", "error", err)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	var dto DepartmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	d, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateDepartment: service error", "error", err, "department_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteDepartment: service error", "error", err, "department_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Department deleted"})
}
