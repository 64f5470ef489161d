// Package gate exposes the plant registry over HTTP.
//
// Every /reactors route requires an API key (query parameter apiKey or the
// X-API-Key header). The key identifies the tenant whose plant the request
// acts on.
package gate

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xiaonanln/plantsim/config"
	"github.com/xiaonanln/plantsim/registry"
	"github.com/xiaonanln/plantsim/util/logger"
)

// GateConfig holds configuration for the gate
type GateConfig struct {
	Registry    *registry.Registry
	APIKeys     map[string]string       // key -> owner name
	Access      *config.AccessValidator // Optional: nil allows every command
	MetricsPath string                  // Optional: empty disables the metrics route
}

// Gate routes HTTP requests to the registry
type Gate struct {
	config *GateConfig
	router *gin.Engine
	logger *logger.Logger
}

// NewGate creates a gate with all routes registered
func NewGate(config *GateConfig) (*Gate, error) {
	if err := validateGateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid gate configuration: %w", err)
	}

	g := &Gate{
		config: config,
		router: gin.New(),
		logger: logger.NewLogger("Gate"),
	}
	g.setupRoutes()
	return g, nil
}

func validateGateConfig(config *GateConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Registry == nil {
		return fmt.Errorf("Registry cannot be nil")
	}
	if config.APIKeys == nil {
		config.APIKeys = map[string]string{}
	}
	return nil
}

// Handler returns the HTTP handler serving every route
func (g *Gate) Handler() http.Handler {
	return g.router
}

func (g *Gate) setupRoutes() {
	g.router.Use(gin.Recovery(), g.requestLogger())

	g.router.GET("/health", g.healthCheck)
	if g.config.MetricsPath != "" {
		g.router.GET(g.config.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	r := g.router.Group("/reactors", g.apiKeyMiddleware())
	{
		r.GET("", g.allow(registry.CommandFindAll), g.findAll)
		r.GET("/temperature/:id", g.allow(registry.CommandTemperature), g.temperature)
		r.GET("/coolant/:id", g.allow(registry.CommandCoolant), g.coolant)
		r.GET("/output/:id", g.allow(registry.CommandOutput), g.output)
		r.GET("/fuel-level/:id", g.allow(registry.CommandFuel), g.fuelLevel)
		r.GET("/rod-state/:id", g.allow(registry.CommandRodState), g.rodState)
		r.GET("/reactor-state/:id", g.allow(registry.CommandReactorState), g.reactorState)
		r.GET("/logs", g.allow(registry.CommandLogs), g.logs)

		r.PUT("/plant-name", g.allow(registry.CommandPlantName), g.setPlantName)
		r.PUT("/set-reactor-name/:id", g.allow(registry.CommandReactorName), g.setReactorName)
		r.POST("/temperature-unit", g.allow(registry.CommandTemperatureUnit), g.setTemperatureUnit)

		r.POST("/raise-rod/:id", g.allow(registry.CommandRaiseRod), g.command(g.config.Registry.RaiseRod))
		r.POST("/drop-rod/:id", g.allow(registry.CommandDropRod), g.command(g.config.Registry.DropRod))
		r.POST("/start-reactor/:id", g.allow(registry.CommandStart), g.command(g.config.Registry.Start))
		r.POST("/controlled-shutdown/:id", g.allow(registry.CommandControlledShutdown), g.command(g.config.Registry.ControlledShutdown))
		r.POST("/emergency-shutdown/:id", g.allow(registry.CommandEmergencyShutdown), g.command(g.config.Registry.EmergencyShutdown))
		r.POST("/maintenance/:id", g.allow(registry.CommandMaintenance), g.command(g.config.Registry.EnableMaintenance))
		r.POST("/refuel/:id", g.allow(registry.CommandRefuel), g.command(g.config.Registry.Refuel))
		r.POST("/coolant/:id", g.allow(registry.CommandSetCoolant), g.setCoolant)
		r.POST("/reset", g.allow(registry.CommandReset), g.reset)
	}
}

func (g *Gate) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
