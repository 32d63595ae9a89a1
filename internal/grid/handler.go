package grid

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /users/:username/location/grid.
func (h *Handler) Get(c *gin.Context) {
	g, err := h.service.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if g == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// LocationsReportedAt handles GET /users/:username/location/grid/:weekday/:hour.
func (h *Handler) LocationsReportedAt(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil || weekday < 1 || weekday > 7 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be 1-7 (Monday=1)"})
		return
	}

	hour, err := strconv.Atoi(c.Param("hour"))
	if err != nil || hour < 0 || hour > 23 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hour must be 0-23"})
		return
	}

	g, err := h.service.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if g == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	entries := h.service.LocationsReportedAt(g, weekday, hour)
	if entries == nil {
		entries = []*Entry{}
	}

	c.JSON(http.StatusOK, gin.H{"locations": entries})
}
