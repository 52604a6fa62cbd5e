// Package api serves the criteria compiler and quotation parser over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-helen-express/pkg/client"
	"github.com/robert-malhotra/go-helen-express/pkg/criteria"
	"github.com/robert-malhotra/go-helen-express/pkg/dsl"
	"github.com/robert-malhotra/go-helen-express/pkg/quotation"
)

// Backend is the part of the backend client the vendor routes need.
type Backend interface {
	VendorZones(ctx context.Context, vendorID string) ([]quotation.Zone, error)
	ReplaceVendorQuotation(ctx context.Context, vendorID string, brackets []quotation.WeightBracket) (int, error)
}

// Handler implements the API routes. Vendor routes are only served with a Backend.
type Handler struct {
	backend Backend
	logger  *zap.Logger
}

func NewHandler(backend Backend, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{backend: backend, logger: logger}
}

type CompileRequest struct {
	Filters     []criteria.FilterItem `json:"filters"`
	Combinator  string                `json:"combinator"`
	StaticQuery string                `json:"staticQuery"`
	Sorts       []criteria.Sort       `json:"sorts"`
	Paging      criteria.Paging       `json:"paging"`
}

type CompileResponse struct {
	Query     string         `json:"query"`
	OrderBy   string         `json:"orderBy,omitempty"`
	Variables map[string]any `json:"variables"`
}

// Compile renders filter items into a query expression.
func (h *Handler) Compile(c *gin.Context) {
	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	comb, err := criteria.ParseCombinator(req.Combinator)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.StaticQuery != "" {
		if err := dsl.Validate(req.StaticQuery); err != nil {
			Fail(c, http.StatusBadRequest, "invalid static query: "+err.Error())
			return
		}
	}

	q := criteria.Query{
		Filters:     req.Filters,
		Combinator:  comb,
		StaticQuery: req.StaticQuery,
		Sorts:       req.Sorts,
		Paging:      req.Paging,
	}
	Success(c, CompileResponse{
		Query:     q.Filter(),
		OrderBy:   criteria.OrderBy(req.Sorts),
		Variables: q.Variables(),
	})
}

type ValidateRequest struct {
	Query string `json:"query" binding:"required"`
}

type ValidateResponse struct {
	Fields []string `json:"fields"`
}

// Validate parses a query expression and reports the fields it reads.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	expr, err := dsl.Parse(req.Query)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	Success(c, ValidateResponse{Fields: expr.Fields()})
}

type EvaluateRequest struct {
	Query   string           `json:"query" binding:"required"`
	Records []map[string]any `json:"records"`
}

type EvaluateResponse struct {
	Matches []int `json:"matches"`
}

// Evaluate applies a query expression to records and returns the indexes that match.
func (h *Handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	expr, err := dsl.Parse(req.Query)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	matches := []int{}
	for i, rec := range req.Records {
		ok, err := expr.Evaluate(rec)
		if err != nil {
			Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		if ok {
			matches = append(matches, i)
		}
	}
	Success(c, EvaluateResponse{Matches: matches})
}

type ParseRequest struct {
	Grid  quotation.Grid   `json:"grid"`
	Zones []quotation.Zone `json:"zones" binding:"required"`
}

type BracketsResponse struct {
	Brackets []quotation.WeightBracket `json:"brackets"`
	Count    int                       `json:"count,omitempty"`
}

// ParseQuotation converts a quotation grid into weight brackets.
func (h *Handler) ParseQuotation(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	brackets, err := quotation.Parse(req.Grid, req.Zones)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	Success(c, BracketsResponse{Brackets: brackets})
}

type TemplateRequest struct {
	Zones    []quotation.Zone          `json:"zones" binding:"required"`
	Brackets []quotation.WeightBracket `json:"brackets"`
}

type GridResponse struct {
	Grid quotation.Grid `json:"grid"`
}

// QuotationTemplate lays zones and brackets out as an editable grid.
func (h *Handler) QuotationTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	Success(c, GridResponse{Grid: quotation.BuildGrid(req.Zones, req.Brackets)})
}

// VendorZones returns the zones of a vendor.
func (h *Handler) VendorZones(c *gin.Context) {
	zones, err := h.backend.VendorZones(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.backendFailure(c, err)
		return
	}
	Success(c, gin.H{"zones": zones})
}

type PushRequest struct {
	Grid quotation.Grid `json:"grid"`
}

// PushQuotation parses a grid against the vendor's zones and replaces its quotation.
func (h *Handler) PushQuotation(c *gin.Context) {
	var req PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	vendorID := c.Param("id")
	ctx := c.Request.Context()

	zones, err := h.backend.VendorZones(ctx, vendorID)
	if err != nil {
		h.backendFailure(c, err)
		return
	}
	brackets, err := quotation.Parse(req.Grid, zones)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	count, err := h.backend.ReplaceVendorQuotation(ctx, vendorID, brackets)
	if err != nil {
		h.backendFailure(c, err)
		return
	}
	h.logger.Info("quotation replaced", zap.String("vendor", vendorID), zap.Int("brackets", count))
	Success(c, BracketsResponse{Brackets: brackets, Count: count})
}

func (h *Handler) backendFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, client.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, client.ErrEmptyVendorID):
		status = http.StatusBadRequest
	}
	Fail(c, status, err.Error())
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	Success(c, gin.H{"status": "ok"})
}
