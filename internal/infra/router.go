package infra

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/umalmyha/crm/docs" // swagger spec
	"github.com/umalmyha/crm/internal/handlers"
	"github.com/umalmyha/crm/internal/metrics"
	"github.com/umalmyha/crm/internal/middleware"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
)

const metricsNamespace = "crm"

func Router(customerSvc service.CustomerService, log *logrus.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate, trans, err := validation.English()
	if err != nil {
		return nil, err
	}

	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e.Validator = validation.Echo(validate, trans)
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Extra functionality
	httpMetrics := metrics.NewHTTPMetrics(metricsNamespace)

	// Middleware
	e.Use(
		echoMw.Recover(),
		middleware.RequestID(log),
		middleware.RequestLogger(),
		httpMetrics.Middleware(),
	)

	// Handlers
	customerAPIHandler := handlers.NewCustomerHTTPHandler(customerSvc)
	customerWebHandler := handlers.NewCustomerWebHandler(customerSvc)

	// API routes
	customersAPI := e.Group("/api/customers")
	customersAPI.GET("", customerAPIHandler.GetAll)
	customersAPI.GET("/:id", customerAPIHandler.Get)
	customersAPI.POST("", customerAPIHandler.Post)
	customersAPI.PUT("/:id", customerAPIHandler.Put)
	customersAPI.PATCH("/:id", customerAPIHandler.Put)
	customersAPI.DELETE("/:id", customerAPIHandler.DeleteByID)

	// Web routes
	e.GET("/", customerWebHandler.Index)
	e.POST("/add", customerWebHandler.Add)
	e.POST("/update/:id", customerWebHandler.Update)
	e.POST("/delete/:id", customerWebHandler.Delete)
	e.GET("/get/:id", customerWebHandler.Get)
	e.StaticFS("/static", handlers.StaticFS())

	// Service routes
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(httpMetrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
