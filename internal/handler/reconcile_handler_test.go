package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raeesul-erabiz/invoice-extractor/internal/handler"
	"github.com/raeesul-erabiz/invoice-extractor/internal/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postReconcile(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := handler.NewReconcileHandler(pipeline.New(pipeline.Options{}))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/reconcile", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Reconcile(c)
	return w
}

func TestReconcileHandler_BareRecord(t *testing.T) {
	w := postReconcile(t, `{
		"supplier_name": "Ordinary Supplier",
		"invoice_number": "INV-42",
		"total_amount": "110.00",
		"Line_Items": [
			{"product_name": "WIDGET 6X1KG", "order_quantity": 1,
			 "line_total_excl": "100.00", "line_total_tax": "10%"}
		]
	}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    handler.ReconcileResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "INV-42", resp.Data.Invoice.InvoiceNumber)
	assert.Equal(t, 1, resp.Data.Invoice.ItemCount)
	assert.NotEmpty(t, resp.Data.RunID)
}

func TestReconcileHandler_Envelope(t *testing.T) {
	w := postReconcile(t, `{
		"record": {"supplier_name": "X", "Line_Items": []},
		"raw_text": "plain text"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestReconcileHandler_EmptyBody(t *testing.T) {
	w := postReconcile(t, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_RECORD", resp.Error.Code)
}

func TestReconcileHandler_MalformedJSON(t *testing.T) {
	w := postReconcile(t, `{"supplier_name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_SOURCE_DATA", resp.Error.Code)
}

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler()

	for name, fn := range map[string]gin.HandlerFunc{
		"liveness":  h.Liveness,
		"readiness": h.Readiness,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			fn(c)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"ok"`)
		})
	}
}

func TestMapDomainError_Unknown(t *testing.T) {
	status, code, _ := handler.MapDomainError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
}
