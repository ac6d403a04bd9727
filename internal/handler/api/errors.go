package api

import (
	"net/http"

	"court-grid/internal/handler/httperr"
	"court-grid/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

func noFacility() error {
	return shared.Invalid(shared.ErrNoFacility)
}

func abortWithEncodeError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
}
