package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const loggerKey = "logger"

// RequestID propagates X-Request-ID header, new id is generated when client hasn't sent one
func RequestID(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
				c.Request().Header.Set(echo.HeaderXRequestID, requestID)
			}

			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.Set(loggerKey, log.WithField("request_id", requestID))

			return next(c)
		}
	}
}

// Logger returns request scoped logger, falls back to standard logrus logger
func Logger(c echo.Context) logrus.FieldLogger {
	if log, ok := c.Get(loggerKey).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}
