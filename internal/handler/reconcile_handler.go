package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
	"github.com/raeesul-erabiz/invoice-extractor/internal/pipeline"
	"github.com/raeesul-erabiz/invoice-extractor/internal/reconcile"
)

// ReconcileHandler exposes the reconciliation pipeline over HTTP.
type ReconcileHandler struct {
	pipe *pipeline.Pipeline
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(pipe *pipeline.Pipeline) *ReconcileHandler {
	return &ReconcileHandler{pipe: pipe}
}

// ReconcileResponse is the payload returned for a processed record.
type ReconcileResponse struct {
	Invoice domain.Invoice    `json:"invoice"`
	RunID   string            `json:"run_id"`
	Events  []reconcile.Event `json:"events"`
}

// Reconcile handles POST /api/v1/invoices/reconcile. The body is either the
// raw extractor record itself or an envelope with optional supplement
// material (see pipeline.Input). The canonical record is returned indented,
// ready for persistence by the caller.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_BODY", "could not read request body")
		return
	}

	raw, sup, err := pipeline.DecodeInput(body)
	if err != nil {
		HandleError(c, err)
		return
	}

	inv, run := h.pipe.Process(c.Request.Context(), raw, sup)

	c.IndentedJSON(http.StatusOK, APIResponse{
		Success: true,
		Data: ReconcileResponse{
			Invoice: inv,
			RunID:   run.ID.String(),
			Events:  run.Events(),
		},
	})
}
