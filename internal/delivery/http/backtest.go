package http

import (
	"errors"
	"net/http"
	"strconv"

	"strategy-backtest/internal/backtest"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/model"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	backtestGroup.POST("", h.runBacktest)
	backtestGroup.POST("/batch", h.runBatchBacktest)
	backtestGroup.GET("/runs", h.getRuns)
	backtestGroup.GET("/runs/:id", h.getRunByID)
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.BacktestService.Run(ctx, *req)
	if err != nil {
		return h.backtestErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("backtest completed", result.JSONSafe()))
}

func (h *HttpAPIHandler) runBatchBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BatchBacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	results, err := h.service.BacktestService.RunMany(ctx, req.Requests)
	if err != nil {
		return h.backtestErrorResponse(c, err)
	}

	safe := make([]dto.BacktestResult, len(results))
	for i, r := range results {
		safe[i] = r.JSONSafe()
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("batch completed", safe))
}

func (h *HttpAPIHandler) getRuns(c echo.Context) error {
	ctx := c.Request().Context()

	param := model.GetBacktestRunsParam{Limit: 50}
	if symbol := c.QueryParam("symbol"); symbol != "" {
		param.Symbols = []string{symbol}
	}
	if strat := c.QueryParam("strategy"); strat != "" {
		param.Strategies = []string{strat}
	}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid limit"))
		}
		param.Limit = n
	}

	runs, err := h.service.BacktestService.GetRuns(ctx, param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list runs", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", runs))
}

func (h *HttpAPIHandler) getRunByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid run id"))
	}

	run, err := h.service.BacktestService.GetRunByID(ctx, uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "run not found", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", run))
}

// backtestErrorResponse maps the typed simulation errors onto HTTP
// statuses so callers can tell bad input from missing data.
func (h *HttpAPIHandler) backtestErrorResponse(c echo.Context, err error) error {
	var cfgErr *backtest.ConfigurationError
	var alignErr *backtest.AlignmentError
	var dataErr *backtest.DataUnavailableError

	switch {
	case errors.As(err, &cfgErr), errors.As(err, &alignErr):
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	case errors.As(err, &dataErr):
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, err.Error(), nil))
	default:
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to run backtest", nil))
	}
}
