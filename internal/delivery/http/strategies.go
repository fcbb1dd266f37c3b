package http

import (
	"net/http"

	"strategy-backtest/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStrategies(base *echo.Group) {
	base.GET("/strategies", h.listStrategies)
}

func (h *HttpAPIHandler) listStrategies(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", h.service.BacktestService.Strategies()))
}
