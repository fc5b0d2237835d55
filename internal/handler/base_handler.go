package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// BaseHandler содержит общие зависимости всех HTTP-обработчиков
type BaseHandler struct {
	logger *logrus.Logger
}

// NewBaseHandler создает новый экземпляр BaseHandler
func NewBaseHandler(logger *logrus.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

func (h *BaseHandler) logRequest(c echo.Context, operation string) *logrus.Entry {
	fields := logrus.Fields{
		"operation": operation,
		"method":    c.Request().Method,
		"path":      c.Request().URL.Path,
		"ip":        c.RealIP(),
	}
	if query := c.QueryString(); query != "" {
		fields["query"] = query
	}

	return h.logger.WithFields(fields)
}
