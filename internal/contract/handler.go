package contract

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Contract, error)
	Get(ctx context.Context, id int64) (*Contract, error)
	Create(ctx context.Context, dto CreateContractDTO) (*Contract, error)
	Update(ctx context.Context, id int64, dto UpdateContractDTO) (*Contract, error)
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

func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, contracts)
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var dto CreateContractDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateContract: service error", "error", err)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	var dto UpdateContractDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateContract: service error", "error", err, "contract_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteContract: service error", "error", err, "contract_id", id)
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Contract deleted"})
}
