package refdata

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/remessa/remessa/internal/platform/httpx"
)

// Handler wires HTTP endpoints for bank and account-type reference data.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers reference data routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/banks", h.listBanks)
	r.Post("/bank", h.createBank)
	r.Get("/bank/{id}", h.getBank)
	r.Patch("/bank/{id}", h.updateBank)
	r.Delete("/bank/{id}", h.deleteBank)
	r.Get("/bank/{id}/accountTypes", h.listBankAccountTypes)

	r.Get("/bankAccountTypes", h.listAccountTypes)
	r.Post("/bankAccountType", h.createAccountType)
	r.Get("/bankAccountType/{id}", h.getAccountType)
	r.Patch("/bankAccountType/{id}", h.updateAccountType)
	r.Delete("/bankAccountType/{id}", h.deleteAccountType)
}

type bankRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type bankPatchRequest struct {
	Name string `json:"name" validate:"required"`
}

type accountTypeRequest struct {
	Type   string `json:"type" validate:"required"`
	Name   string `json:"name" validate:"required"`
	BankID string `json:"bankId" validate:"required"`
}

type accountTypePatchRequest struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	BankID string `json:"bankId"`
}

func (h *Handler) listBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.service.ListBanks(r.Context())
	if err != nil {
		h.logger.Error("list banks", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if banks == nil {
		banks = []Bank{}
	}
	httpx.JSON(w, http.StatusOK, banks)
}

func (h *Handler) createBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.CreateBank(r.Context(), Bank{ID: req.ID, Name: req.Name}); err != nil {
		h.logger.Error("create bank", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	bank, err := h.service.GetBank(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bank)
}

func (h *Handler) updateBank(w http.ResponseWriter, r *http.Request) {
	var req bankPatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.UpdateBank(r.Context(), Bank{ID: chi.URLParam(r, "id"), Name: req.Name}); err != nil {
		h.logger.Error("update bank", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteBank(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBank(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete bank", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listBankAccountTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListAccountTypesForBank(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if types == nil {
		types = []BankAccountType{}
	}
	httpx.JSON(w, http.StatusOK, types)
}

func (h *Handler) listAccountTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListAccountTypes(r.Context())
	if err != nil {
		h.logger.Error("list account types", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if types == nil {
		types = []BankAccountTypeWithBank{}
	}
	httpx.JSON(w, http.StatusOK, types)
}

func (h *Handler) createAccountType(w http.ResponseWriter, r *http.Request) {
	var req accountTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.CreateAccountType(r.Context(), BankAccountType{
		Type:   req.Type,
		Name:   req.Name,
		BankID: req.BankID,
	})
	if err != nil {
		h.logger.Error("create account type", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) getAccountType(w http.ResponseWriter, r *http.Request) {
	at, err := h.service.GetAccountType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, at)
}

func (h *Handler) updateAccountType(w http.ResponseWriter, r *http.Request) {
	var req accountTypePatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	patch := BankAccountType{Type: req.Type, Name: req.Name, BankID: req.BankID}
	if err := h.service.UpdateAccountType(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		h.logger.Error("update account type", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAccountType(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAccountType(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete account type", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
