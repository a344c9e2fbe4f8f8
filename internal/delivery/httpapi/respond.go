package httpapi

import (
	"net/http"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondError keeps the terminal contract: business rejections come back as
// 200 with success=false and the reason, so gate UIs show the message instead
// of an error page. Everything else is an opaque 500; infrastructure details
// never leak to gate terminals.
func respondError(c *gin.Context, err error) {
	if reason, ok := domain.RejectionReason(err); ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": reason})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}
