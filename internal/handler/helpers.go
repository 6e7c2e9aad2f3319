package handler

import (
	"net/http"

	"fruitwarehouse/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(http.StatusBadRequest, "Malformed request body: "+err.Error(), c.Request.URL.Path))
		return false
	}
	return validateRequest(c, req)
}

// bindQuery is bindAndValidate for query-string parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(http.StatusBadRequest, "Invalid query parameters: "+err.Error(), c.Request.URL.Path))
		return false
	}
	return validateRequest(c, req)
}

func validateRequest(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewValidation(c.Request.URL.Path, fieldErrors(err)))
		return false
	}
	return true
}

// uuidParam parses a path parameter, writing a 400 when it is not a UUID.
func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(http.StatusBadRequest, "Invalid "+label+" id", c.Request.URL.Path))
		return uuid.Nil, false
	}
	return id, true
}

// respondError writes domain errors with their mapped status. Anything else is
// attached to the context so middleware.ErrorHandler logs it and answers 500.
func respondError(c *gin.Context, err error) {
	if e, ok := apierror.As(err); ok {
		log.Warn().
			Str("path", c.Request.URL.Path).
			Str("kind", e.Kind.String()).
			Msg(e.Message)
		status := e.Kind.Status()
		c.JSON(status, apierror.New(status, e.Message, c.Request.URL.Path))
		return
	}
	_ = c.Error(err)
}
