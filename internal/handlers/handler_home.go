package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// home is a trivial landing route so hitting the root does not 404.
func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "parish-ledger", "status": "ok"})
}
