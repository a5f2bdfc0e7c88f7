package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunInactivityScan triggers the inactivity notification scan on demand. The
// scheduler runs the same scan periodically; the dedup markers keep the two
// from double-notifying.
func (s *Server) RunInactivityScan(c *gin.Context) {
	result, err := s.inactivitySvc.Scan(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
