package beneficiary

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/remessa/remessa/internal/platform/httpx"
	"github.com/remessa/remessa/internal/shared"
)

// Handler wires HTTP endpoints for beneficiaries.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers beneficiary routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/beneficiary", h.create)
	r.Get("/beneficiary/{id}", h.get)
	r.Patch("/beneficiary/{id}", h.update)
	r.Get("/beneficiaries", h.list)
	r.Delete("/beneficiaries", h.batchDelete)
}

type createRequest struct {
	Name              string  `json:"name" validate:"required"`
	Email             string  `json:"email" validate:"required,email"`
	Document          string  `json:"document" validate:"required"`
	DocumentType      string  `json:"documentType" validate:"required"`
	AgencyNumber      string  `json:"agencyNumber" validate:"required"`
	AgencyDigit       string  `json:"agencyDigit"`
	AccountNumber     string  `json:"accountNumber" validate:"required"`
	AccountDigit      *string `json:"accountDigit" validate:"required"`
	BankID            string  `json:"bankId" validate:"required"`
	BankAccountTypeID string  `json:"bankAccountTypeId" validate:"required"`
}

type updateRequest struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Document          *string `json:"document"`
	DocumentType      *string `json:"documentType"`
	Status            *string `json:"status"`
	AgencyNumber      *string `json:"agencyNumber"`
	AgencyDigit       *string `json:"agencyDigit"`
	AccountNumber     *string `json:"accountNumber"`
	AccountDigit      *string `json:"accountDigit"`
	BankID            *string `json:"bankId"`
	BankAccountTypeID *string `json:"bankAccountTypeId"`
}

type batchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type listResponse struct {
	Items      []WithRefs        `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	id, err := h.service.Create(r.Context(), CreateInput{
		Name:              req.Name,
		Email:             req.Email,
		Document:          req.Document,
		DocumentType:      req.DocumentType,
		AgencyNumber:      req.AgencyNumber,
		AgencyDigit:       req.AgencyDigit,
		AccountNumber:     req.AccountNumber,
		AccountDigit:      *req.AccountDigit,
		BankID:            req.BankID,
		BankAccountTypeID: req.BankAccountTypeID,
	})
	if err != nil {
		h.logger.Error("create beneficiary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	err := h.service.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
		Name:              req.Name,
		Email:             req.Email,
		Document:          req.Document,
		DocumentType:      req.DocumentType,
		Status:            req.Status,
		AgencyNumber:      req.AgencyNumber,
		AgencyDigit:       req.AgencyDigit,
		AccountNumber:     req.AccountNumber,
		AccountDigit:      req.AccountDigit,
		BankID:            req.BankID,
		BankAccountTypeID: req.BankAccountTypeID,
	})
	if err != nil {
		h.logger.Error("update beneficiary", slog.Any("error", err), slog.String("id", chi.URLParam(r, "id")))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "page must be an integer")
			return
		}
		page = parsed
	}

	items, pagination, err := h.service.List(r.Context(), page, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("list beneficiaries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []WithRefs{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Items: items, Pagination: pagination})
}

func (h *Handler) batchDelete(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	deleted, err := h.service.Delete(r.Context(), req.IDs)
	if err != nil {
		h.logger.Error("batch delete beneficiaries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
