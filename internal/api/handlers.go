package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/internal/pipeline"
	"github.com/mohamedkhairy/stock-analysis/internal/presentation"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
)

// Catalog lists the categories and symbols available for selection
type Catalog interface {
	Categories(ctx context.Context) ([]string, error)
	Symbols(ctx context.Context, category string) ([]string, error)
}

// Runner computes the report for one selection
type Runner interface {
	Run(ctx context.Context, sel models.Selection) (*pipeline.Report, error)
}

// AnalysisHandler serves the selection and analysis endpoints
type AnalysisHandler struct {
	catalog  Catalog
	runner   Runner
	validate *validator.Validate
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(catalog Catalog, runner Runner) *AnalysisHandler {
	return &AnalysisHandler{
		catalog:  catalog,
		runner:   runner,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// analysisQuery is the query string of the analysis endpoints
type analysisQuery struct {
	Category string `validate:"required"`
	Symbol   string `validate:"required"`
	From     string `validate:"omitempty,datetime=2006-01-02"`
	To       string `validate:"omitempty,datetime=2006-01-02"`
}

// ListCategories handles GET /api/v1/categories
func (h *AnalysisHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error("Failed to list categories", logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListSymbols handles GET /api/v1/categories/{category}/symbols
func (h *AnalysisHandler) ListSymbols(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	symbols, err := h.catalog.Symbols(r.Context(), category)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCategory) {
			respondWithError(w, http.StatusNotFound, "Category not found")
			return
		}
		logger.WithContext(r.Context()).Error("Failed to list symbols",
			logger.String("category", category),
			logger.ErrorField(err),
		)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve symbols")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"symbols":  symbols,
		"count":    len(symbols),
	})
}

// GetAnalysis handles GET /api/v1/analysis
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	report, ok := h.run(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// GetCharts handles GET /api/v1/analysis/charts
func (h *AnalysisHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	report, ok := h.run(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"category": report.Category,
		"symbol":   report.Symbol,
		"charts":   presentation.Charts(report.Symbol, report.Rows),
	})
}

// run parses the selection from the query and runs the pipeline, writing
// the error response itself when it fails.
func (h *AnalysisHandler) run(w http.ResponseWriter, r *http.Request) (*pipeline.Report, bool) {
	sel, err := h.parseSelection(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	report, err := h.runner.Run(r.Context(), sel)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSelection) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		logger.WithContext(r.Context()).Error("Failed to run analysis",
			logger.String("category", sel.Category),
			logger.String("symbol", sel.Symbol),
			logger.ErrorField(err),
		)
		respondWithError(w, http.StatusInternalServerError, "Failed to compute analysis")
		return nil, false
	}

	return report, true
}

func (h *AnalysisHandler) parseSelection(r *http.Request) (models.Selection, error) {
	q := r.URL.Query()
	query := analysisQuery{
		Category: q.Get("category"),
		Symbol:   q.Get("symbol"),
		From:     q.Get("from"),
		To:       q.Get("to"),
	}
	if err := h.validate.Struct(query); err != nil {
		return models.Selection{}, validationError(err)
	}

	sel := models.Selection{Category: query.Category, Symbol: query.Symbol}
	var err error
	if sel.From, err = parseOptionalDate(query.From); err != nil {
		return models.Selection{}, err
	}
	if sel.To, err = parseOptionalDate(query.To); err != nil {
		return models.Selection{}, err
	}
	return sel, nil
}

func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(models.DateLayout, value)
}

// validationError reports the first failing query parameter
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.New("missing query parameter: " + queryName(fe.Field()))
	case "datetime":
		return errors.New("invalid date for " + queryName(fe.Field()) + ", expected YYYY-MM-DD")
	default:
		return errors.New("invalid query parameter: " + queryName(fe.Field()))
	}
}

func queryName(field string) string {
	switch field {
	case "Category":
		return "category"
	case "Symbol":
		return "symbol"
	case "From":
		return "from"
	case "To":
		return "to"
	}
	return field
}
