package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every error response:
// { "error": { "code": "not_found", "message": "..." } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

func jsonError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

func badRequest(c *gin.Context, msg string) {
	jsonError(c, http.StatusBadRequest, "bad_request", msg)
}

func notFound(c *gin.Context, msg string) {
	jsonError(c, http.StatusNotFound, "not_found", msg)
}
