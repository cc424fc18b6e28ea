// Package reportdelivery manages delivery layer of reports.
package reportdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/errorspkg"
	"github.com/go-petr/bank-insights/pkg/web"
)

// Service provides service layer interface needed by report delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package reportdelivery
type Service interface {
	Reports() []domain.ReportInfo
	Run(ctx context.Context, name string, p domain.ReportParams) (domain.ReportResult, error)
	RunBatch(ctx context.Context, reqs []domain.ReportRequest) ([]domain.ReportResult, error)
	Audit(ctx context.Context) (domain.AuditReport, error)
}

// Handler facilitates report delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns report handler.
func NewHandler(rs Service) Handler {
	return Handler{service: rs}
}

// List handles http request to list the available reports.
func (h *Handler) List(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Response{Data: h.service.Reports()})
}

type runURI struct {
	Name string `uri:"name" binding:"required"`
}

type runQuery struct {
	Days      int    `form:"days" binding:"min=0"`
	Months    int    `form:"months" binding:"min=0"`
	N         int    `form:"n" binding:"min=0"`
	Threshold string `form:"threshold" binding:"omitempty,numeric"`
	AccountID int64  `form:"account_id" binding:"min=0"`
}

func (q runQuery) params() (domain.ReportParams, error) {
	p := domain.ReportParams{
		Days:      q.Days,
		Months:    q.Months,
		N:         q.N,
		AccountID: q.AccountID,
	}

	if q.Threshold != "" {
		threshold, err := decimal.NewFromString(q.Threshold)
		if err != nil {
			return p, fmt.Errorf("%w: threshold %q is not a decimal", domain.ErrInvalidParameter, q.Threshold)
		}
		p.Threshold = threshold
	}

	return p, nil
}

// Run handles http request to run a single report.
func (h *Handler) Run(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri runURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	var query runQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	params, err := query.params()
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	res, err := h.service.Run(ctx, uri.Name, params)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type batchRequest struct {
	Requests []domain.ReportRequest `json:"requests" binding:"required,min=1"`
}

// Batch handles http request to run several reports against the same tables.
func (h *Handler) Batch(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req batchRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	results, err := h.service.RunBatch(ctx, req.Requests)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: results})
}

// Audit handles http request to run every data quality check.
func (h *Handler) Audit(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	findings, err := h.service.Audit(ctx)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: findings})
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func writeError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrUnknownReport):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
