package auth

import (
	"context"
	"log/slog"
	"net/http"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	SetPassword(ctx context.Context, caller Principal, employeeID int64, dto SetPasswordDTO) error
	Profile(ctx context.Context, caller Principal) (*Profile, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI, lg *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("Login: authentication failed", "error", err)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) SetPassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.HandleError(w, apperrors.ErrMissingToken)
		return
	}

	employeeID, err := h.PathID(r, "employee_id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	var dto SetPasswordDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	if err := h.Service.SetPassword(r.Context(), caller, employeeID, dto); err != nil {
		h.Logger.Error("SetPassword: service error", "error", err, "employee_id", employeeID)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	caller, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.HandleError(w, apperrors.ErrMissingToken)
		return
	}

	profile, err := h.Service.Profile(r.Context(), caller)
	if err != nil {
		h.Logger.Warn("Profile: lookup failed", "error", err, "employee_id", caller.EmployeeID)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}
