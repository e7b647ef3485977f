package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/brightsky/internal/params"
	"github.com/vzahanych/brightsky/internal/server/utils"
	"github.com/vzahanych/brightsky/pkg/brightsky"
	"github.com/vzahanych/brightsky/pkg/client"
	"github.com/vzahanych/brightsky/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// UpstreamRecorder counts calls made to the Bright Sky API.
type UpstreamRecorder interface {
	RecordUpstreamCall(endpoint string, success bool)
}

type QueryHandler struct {
	client   *client.Client
	logger   *zap.Logger
	recorder UpstreamRecorder
	tele     *telemetry.Telemetry
}

func NewQueryHandler(c *client.Client, logger *zap.Logger, recorder UpstreamRecorder, tele *telemetry.Telemetry) *QueryHandler {
	return &QueryHandler{
		client:   c,
		logger:   logger,
		recorder: recorder,
		tele:     tele,
	}
}

// PreviewURL answers with the URL a query would be sent to.
func (h *QueryHandler) PreviewURL(c *gin.Context) {
	endpoint, q, ok := h.buildQuery(c)
	if !ok {
		return
	}

	u, err := brightsky.URL(h.client.BaseURL(), q)
	if err != nil {
		utils.RequestLogger(c, h.logger).Error("Failed to construct URL", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to construct URL",
			Code:    "URL_CONSTRUCTION",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, URLResponse{
		Endpoint: string(endpoint),
		URL:      u.String(),
		Path:     q.Path(),
		Query:    u.RawQuery,
	})
}

// Fetch sends the query upstream and relays the JSON body. Upstream error
// statuses are passed through unchanged.
func (h *QueryHandler) Fetch(c *gin.Context) {
	endpoint, q, ok := h.buildQuery(c)
	if !ok {
		return
	}

	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	utils.GetSpanFromGinContext(c).SetAttributes(attribute.String("brightsky.endpoint", string(endpoint)))

	body, err := h.client.Fetch(ctx, q)
	if h.recorder != nil {
		h.recorder.RecordUpstreamCall(string(endpoint), err == nil)
	}
	if err != nil {
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			reqLogger.Warn("Upstream returned an error status",
				zap.String("endpoint", string(endpoint)),
				zap.Int("status", statusErr.Code))
			c.Data(statusErr.Code, "application/json; charset=utf-8", statusErr.Body)
			return
		}

		h.tele.RecordError(err, ctx, map[string]interface{}{"brightsky.endpoint": string(endpoint)})
		reqLogger.Error("Failed to fetch from upstream",
			zap.String("endpoint", string(endpoint)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Failed to fetch from Bright Sky",
			Code:    "UPSTREAM_ERROR",
			Details: err.Error(),
		})
		return
	}

	reqLogger.Info("Query relayed",
		zap.String("endpoint", string(endpoint)),
		zap.Int("body_size", len(body)))

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// buildQuery writes the error response itself and reports ok=false on failure.
func (h *QueryHandler) buildQuery(c *gin.Context) (params.Endpoint, brightsky.Query, bool) {
	reqLogger := utils.RequestLogger(c, h.logger)

	_, end := h.tele.StartSpan(utils.GetContextFromGinContext(c), "brightsky.BuildQuery")
	defer end()

	endpoint, err := params.ParseEndpoint(c.Param("endpoint"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Unknown endpoint",
			Code:    "UNKNOWN_ENDPOINT",
			Details: err.Error(),
		})
		return "", nil, false
	}

	var p params.Params
	if err := c.ShouldBindQuery(&p); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return "", nil, false
	}

	q, err := p.Build(endpoint)
	if err != nil {
		if body, ok := utils.FormatValidationError(err); ok {
			reqLogger.Info("Query rejected",
				zap.String("endpoint", string(endpoint)),
				zap.String("code", body.Code),
				zap.String("field", body.Field))
			c.JSON(http.StatusBadRequest, body)
			return "", nil, false
		}

		reqLogger.Error("Failed to build query", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to build query",
			Code:    "INTERNAL_ERROR",
			Details: err.Error(),
		})
		return "", nil, false
	}

	return endpoint, q, true
}
