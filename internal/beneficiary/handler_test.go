package beneficiary

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *Service, *mockRepository) {
	t.Helper()
	svc, repo := newTestService()
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r, svc, repo
}

func doJSON(t *testing.T, r chi.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func createPayload() map[string]any {
	return map[string]any{
		"name":              "Maria Silva",
		"email":             "maria@example.com",
		"document":          "53902371021",
		"documentType":      "CPF",
		"agencyNumber":      "1234",
		"agencyDigit":       "1",
		"accountNumber":     "123456",
		"accountDigit":      "1",
		"bankId":            "BANCO_DO_BRASIL",
		"bankAccountTypeId": "at-bb-corrente",
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return buf.String()
}

func TestHandlerCreateBeneficiary(t *testing.T) {
	r, _, repo := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/beneficiary", mustJSON(t, createPayload()))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.Contains(t, repo.items, resp["id"])
}

func TestHandlerCreateBeneficiaryMalformedBody(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/beneficiary", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerCreateBeneficiaryMissingField(t *testing.T) {
	r, _, _ := newTestRouter(t)

	payload := createPayload()
	delete(payload, "email")
	rr := doJSON(t, r, http.MethodPost, "/beneficiary", mustJSON(t, payload))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerCreateBeneficiaryEmptyAccountDigit(t *testing.T) {
	r, _, _ := newTestRouter(t)

	// The account digit key must be present, but the Banco do Brasil schema
	// accepts an empty value.
	payload := createPayload()
	payload["accountDigit"] = ""
	rr := doJSON(t, r, http.MethodPost, "/beneficiary", mustJSON(t, payload))
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	delete(payload, "accountDigit")
	payload["email"] = "other@example.com"
	payload["document"] = "11144477735"
	rr = doJSON(t, r, http.MethodPost, "/beneficiary", mustJSON(t, payload))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerCreateBeneficiaryDuplicate(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/beneficiary", mustJSON(t, createPayload()))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, r, http.MethodPost, "/beneficiary", mustJSON(t, createPayload()))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandlerGetBeneficiary(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	id, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	rr := doJSON(t, r, http.MethodGet, "/beneficiary/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got WithRefs
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, StatusDraft, got.Status)
}

func TestHandlerGetBeneficiaryNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/beneficiary/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerUpdateBeneficiary(t *testing.T) {
	r, svc, repo := newTestRouter(t)

	id, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	rr := doJSON(t, r, http.MethodPatch, "/beneficiary/"+id, `{"name":"Maria Souza"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Maria Souza", repo.items[id].Name)
}

func TestHandlerUpdateBeneficiaryNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPatch, "/beneficiary/missing", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerUpdateBeneficiaryInvalidPatch(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	id, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	rr := doJSON(t, r, http.MethodPatch, "/beneficiary/"+id, `{"accountNumber":"123456789"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerListBeneficiaries(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	_, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	rr := doJSON(t, r, http.MethodGet, "/beneficiaries", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 1, resp.Pagination.Total)
}

func TestHandlerListBeneficiariesSearch(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	_, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	rr := doJSON(t, r, http.MethodGet, "/beneficiaries?search=Nobody", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.Pagination.Total)
}

func TestHandlerListBeneficiariesInvalidPage(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/beneficiaries?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/beneficiaries?page=0", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/beneficiaries?page=-1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerBatchDelete(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	id, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	rr := doJSON(t, r, http.MethodDelete, "/beneficiaries", mustJSON(t, map[string]any{"ids": []string{id}}))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp["deleted"])
}

func TestHandlerBatchDeleteEmptyIDs(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodDelete, "/beneficiaries", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, r, http.MethodDelete, "/beneficiaries", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
