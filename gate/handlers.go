package gate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"github.com/xiaonanln/plantsim/reactor"
	"github.com/xiaonanln/plantsim/util/callcontext"
	perrors "github.com/xiaonanln/plantsim/util/errors"
)

const errReactorNotFound = "A reactor with that ID could not be found."

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type temperatureUnitRequest struct {
	Unit reactor.TemperatureUnit `json:"unit" binding:"required,oneof=celsius fahrenheit"`
}

type coolantRequest struct {
	Coolant reactor.Coolant `json:"coolant" binding:"required,oneof=on off"`
}

func tenantKey(c *gin.Context) string {
	return callcontext.TenantKey(c.Request.Context())
}

// respondError renders err by its classification
func (g *Gate) respondError(c *gin.Context, err error) {
	switch perrors.Code(err) {
	case codes.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": errReactorNotFound})
	case codes.FailedPrecondition:
		var rejected *perrors.RejectedError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusBadRequest, gin.H{"error": rejected.Reason})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		g.logger.Errorf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (g *Gate) respondResult(c *gin.Context, res reactor.Result, err error) {
	if err != nil {
		g.respondError(c, err)
		return
	}
	if !res.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Reason()})
		return
	}
	c.Status(http.StatusNoContent)
}

// query renders the value read from one reactor under field
func (g *Gate) query(c *gin.Context, field string, read func(key, id string) (any, error)) {
	v, err := read(tenantKey(c), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{field: v})
}

// command adapts a registry reactor command to a handler
func (g *Gate) command(run func(key, id string) (reactor.Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := run(tenantKey(c), c.Param("id"))
		g.respondResult(c, res, err)
	}
}

func (g *Gate) findAll(c *gin.Context) {
	key := tenantKey(c)
	c.JSON(http.StatusOK, gin.H{
		"reactors":   g.config.Registry.FindAll(key),
		"plant_name": g.config.Registry.PlantName(key),
	})
}

func (g *Gate) temperature(c *gin.Context) {
	g.query(c, "temperature", func(key, id string) (any, error) {
		return g.config.Registry.Temperature(key, id)
	})
}

func (g *Gate) coolant(c *gin.Context) {
	g.query(c, "coolant", func(key, id string) (any, error) {
		return g.config.Registry.Coolant(key, id)
	})
}

func (g *Gate) output(c *gin.Context) {
	g.query(c, "output", func(key, id string) (any, error) {
		return g.config.Registry.Output(key, id)
	})
}

func (g *Gate) fuelLevel(c *gin.Context) {
	g.query(c, "fuel", func(key, id string) (any, error) {
		fuel, err := g.config.Registry.Fuel(key, id)
		if err != nil {
			return nil, err
		}
		return gin.H{"percentage": fuel}, nil
	})
}

func (g *Gate) rodState(c *gin.Context) {
	g.query(c, "control_rods", func(key, id string) (any, error) {
		return g.config.Registry.ControlRods(key, id)
	})
}

func (g *Gate) reactorState(c *gin.Context) {
	g.query(c, "state", func(key, id string) (any, error) {
		return g.config.Registry.State(key, id)
	})
}

func (g *Gate) logs(c *gin.Context) {
	c.JSON(http.StatusOK, g.config.Registry.Logs(tenantKey(c)))
}

func (g *Gate) setPlantName(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g.config.Registry.Rename(tenantKey(c), req.Name)
	c.Status(http.StatusNoContent)
}

func (g *Gate) setReactorName(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := g.config.Registry.SetReactorName(tenantKey(c), c.Param("id"), req.Name); err != nil {
		g.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (g *Gate) setTemperatureUnit(c *gin.Context) {
	var req temperatureUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := g.config.Registry.SetTemperatureUnit(tenantKey(c), req.Unit); err != nil {
		g.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (g *Gate) setCoolant(c *gin.Context) {
	var req coolantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := g.config.Registry.SetCoolant(tenantKey(c), c.Param("id"), req.Coolant)
	g.respondResult(c, res, err)
}

func (g *Gate) reset(c *gin.Context) {
	g.config.Registry.Reset(tenantKey(c))
	c.Status(http.StatusNoContent)
}
