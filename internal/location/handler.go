package location

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type reportRequest struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Report handles POST /users/:username/location.
func (h *Handler) Report(c *gin.Context) {
	var req reportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	loc, err := h.service.Report(c.Request.Context(), c.Param("username"), req.Longitude, req.Latitude)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusCreated, loc)
}

// History handles GET /users/:username/location.
func (h *Handler) History(c *gin.Context) {
	locations, err := h.service.History(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if locations == nil {
		locations = []*ReportedLocation{}
	}

	c.JSON(http.StatusOK, gin.H{"lastReportedLocations": locations})
}
