package route

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	builder *Builder
}

func NewHandler(builder *Builder) *Handler {
	return &Handler{builder: builder}
}

// Build handles GET /users/:username/location/routes?start=&end=.
// Bounds accept RFC 3339 or unix seconds; both are optional. start > end is
// not rejected here, it just yields an empty route.
func (h *Handler) Build(c *gin.Context) {
	start, ok := parseBound(c, "start")
	if !ok {
		return
	}
	end, ok := parseBound(c, "end")
	if !ok {
		return
	}

	route, err := h.builder.Build(c.Request.Context(), c.Param("username"), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": route.LineString()})
}

func parseBound(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}

	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		t := time.Unix(secs, 0).UTC()
		return &t, true
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error": name + " must be RFC 3339 or unix seconds",
	})
	c.Abort()
	return nil, false
}
