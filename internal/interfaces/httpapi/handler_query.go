package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/volleyball-stats/internal/domain/rowset"
	"github.com/riskibarqy/volleyball-stats/internal/usecase"
)

const maxQueryBodyBytes = 1 << 20

type queryRequest struct {
	Query string `json:"query" validate:"required,max=65536"`
}

type queryResultDTO struct {
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
	RowCount int      `json:"row_count"`
}

func (h *Handler) RunQuery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunQuery")
	defer span.End()

	var req queryRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.queryService.Run(ctx, req.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "run query failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, queryResultToDTO(result))
}

func queryResultToDTO(result rowset.Result) queryResultDTO {
	columns := result.Columns
	if columns == nil {
		columns = []string{}
	}
	rows := result.Rows
	if rows == nil {
		rows = [][]any{}
	}
	return queryResultDTO{
		Columns:  columns,
		Rows:     rows,
		RowCount: len(rows),
	}
}
