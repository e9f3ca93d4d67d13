package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "findash/internal/errors"
	"findash/pkg/contracts/domain"
)

// DataServiceInterface is the slice of the data service the handlers
// need. Kept as an interface so handler tests can stub it.
type DataServiceInterface interface {
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	Symbols(ctx context.Context) ([]string, error)
	PriceBars(ctx context.Context) ([]domain.PriceBar, error)
	Dividends(ctx context.Context) ([]domain.DividendEvent, error)
	Earnings(ctx context.Context) ([]domain.EarningsEvent, error)
	Returns(ctx context.Context, symbol string) ([]domain.ReturnPoint, error)
	Volatility(ctx context.Context, symbol string) (float64, error)
	CorrelationMatrix(ctx context.Context, symbols []string) ([]domain.CorrelationPair, error)
	FilterByTime(ctx context.Context, symbol, start, end string) ([]domain.PriceBar, error)
	FilterBySymbols(ctx context.Context, symbols []string) ([]domain.PriceBar, error)
	ChartData(ctx context.Context) ([]domain.ChartSeries, error)
}

// DataHandler exposes the record set and the analytics engine over
// HTTP. Analytics operations are POSTs carrying validated JSON bodies;
// plain record reads are GETs.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the data routes with proper Chi patterns
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/symbols", h.GetSymbols)
	r.Get("/prices", h.GetPriceBars)
	r.Get("/dividends", h.GetDividends)
	r.Get("/earnings", h.GetEarnings)
	r.Get("/chart", h.GetChart)

	r.Post("/prices/filter", h.FilterByTime)
	r.Post("/prices/by-symbols", h.FilterBySymbols)

	r.Route("/analytics", func(r chi.Router) {
		r.Post("/returns", h.CalculateReturns)
		r.Post("/volatility", h.CalculateVolatility)
		r.Post("/correlations", h.CalculateCorrelations)
	})

	r.Get("/snapshot", h.GetSnapshot)
	r.Post("/snapshot/reload", h.ReloadSnapshot)

	return r
}

// symbolRequest selects a single symbol for an analytics operation.
type symbolRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

// correlationRequest selects the symbols for a correlation matrix. An
// omitted list means every loaded symbol; a provided list needs at
// least two entries to form a pair.
type correlationRequest struct {
	Symbols []string `json:"symbols" validate:"omitempty,min=2,dive,required"`
}

// timeFilterRequest bounds one symbol's bars to an inclusive date
// range. The dates are calendar text ("2023-01-02"); unparseable
// bounds fall back to the current time per the filter-date rules.
type timeFilterRequest struct {
	Symbol    string `json:"symbol" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// symbolSetRequest selects bars belonging to any of the given symbols.
type symbolSetRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,dive,required"`
}

// GetSymbols handles GET /api/symbols
func (h *DataHandler) GetSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.service.Symbols(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"symbols": symbols})
}

// GetPriceBars handles GET /api/prices
func (h *DataHandler) GetPriceBars(w http.ResponseWriter, r *http.Request) {
	bars, err := h.service.PriceBars(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"price_bars": bars})
}

// GetDividends handles GET /api/dividends
func (h *DataHandler) GetDividends(w http.ResponseWriter, r *http.Request) {
	dividends, err := h.service.Dividends(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"dividends": dividends})
}

// GetEarnings handles GET /api/earnings
func (h *DataHandler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.service.Earnings(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"earnings": earnings})
}

// GetChart handles GET /api/chart
func (h *DataHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.ChartData(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"series": series})
}

// CalculateReturns handles POST /api/analytics/returns
func (h *DataHandler) CalculateReturns(w http.ResponseWriter, r *http.Request) {
	var req symbolRequest
	if !h.decode(w, r, &req) {
		return
	}

	points, err := h.service.Returns(r.Context(), req.Symbol)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"symbol":  req.Symbol,
		"returns": points,
	})
}

// CalculateVolatility handles POST /api/analytics/volatility
func (h *DataHandler) CalculateVolatility(w http.ResponseWriter, r *http.Request) {
	var req symbolRequest
	if !h.decode(w, r, &req) {
		return
	}

	volatility, err := h.service.Volatility(r.Context(), req.Symbol)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"symbol":     req.Symbol,
		"volatility": volatility,
	})
}

// CalculateCorrelations handles POST /api/analytics/correlations
func (h *DataHandler) CalculateCorrelations(w http.ResponseWriter, r *http.Request) {
	var req correlationRequest
	if !h.decode(w, r, &req) {
		return
	}

	pairs, err := h.service.CorrelationMatrix(r.Context(), req.Symbols)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"correlations": pairs})
}

// FilterByTime handles POST /api/prices/filter
func (h *DataHandler) FilterByTime(w http.ResponseWriter, r *http.Request) {
	var req timeFilterRequest
	if !h.decode(w, r, &req) {
		return
	}

	bars, err := h.service.FilterByTime(r.Context(), req.Symbol, req.StartDate, req.EndDate)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"symbol":     req.Symbol,
		"price_bars": bars,
	})
}

// FilterBySymbols handles POST /api/prices/by-symbols
func (h *DataHandler) FilterBySymbols(w http.ResponseWriter, r *http.Request) {
	var req symbolSetRequest
	if !h.decode(w, r, &req) {
		return
	}

	bars, err := h.service.FilterBySymbols(r.Context(), req.Symbols)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"price_bars": bars})
}

// GetSnapshot handles GET /api/snapshot
func (h *DataHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, snapshotInfo(snap))
}

// ReloadSnapshot handles POST /api/snapshot/reload
func (h *DataHandler) ReloadSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.LoadSnapshot(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, snapshotInfo(snap))
}

// decode unmarshals and validates a JSON request body, writing a
// validation problem and returning false on failure.
func (h *DataHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		render.Render(w, r, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Invalid Request Body",
			"The request body is not valid JSON",
			r.URL.Path,
		))
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		var fieldErrors []apierrors.ValidationError
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fieldErrors = append(fieldErrors, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: fe.Tag(),
				})
			}
		}
		render.Render(w, r, apierrors.NewValidationProblem(r.URL.Path, fieldErrors))
		return false
	}
	return true
}

// snapshotInfo projects a snapshot to its metadata; the record lists
// themselves are served by the dedicated endpoints.
func snapshotInfo(snap *domain.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"id":         snap.ID,
		"loaded_at":  snap.LoadedAt,
		"symbols":    len(snap.Symbols),
		"price_bars": len(snap.PriceBars),
		"dividends":  len(snap.Dividends),
		"earnings":   len(snap.Earnings),
	}
}
