package webserver

import (
	"errors"
	"net/http"

	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/gin-gonic/gin"
)

// writeError maps engine errors onto HTTP statuses: malformed payloads are
// 400, unknown identities 404, operations the lifecycle forbids 409.
func writeError(c *gin.Context, err error) {
	var verr *governance.ValidationError
	var ise *governance.InvalidStateError
	var nf *governance.NotFoundError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"err": verr.Error(), "field": verr.Field})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"err": nf.Error()})
	case errors.As(err, &ise):
		c.JSON(http.StatusConflict, gin.H{"err": ise.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
	}
}
