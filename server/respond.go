package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/store"
)

// respondError writes the public form of err and aborts the chain.
// Server errors are logged; their text never reaches the client.
func (s *Server) respondError(c *gin.Context, err error) {
	resp := errors.NewResponse(err)
	if resp.StatusCode >= http.StatusInternalServerError {
		s.Log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.AbortWithStatusJSON(resp.StatusCode, gin.H{
		"error":             resp.Error.Error(),
		"error_description": resp.Description,
	})
}

func badRequest(c *gin.Context, description string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":             "invalid_request",
		"error_description": description,
	})
}

// pageFromQuery reads page and pageSize; bad values fall back to defaults.
func pageFromQuery(c *gin.Context) store.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", c.Query("page_size")))
	return store.Page{Page: page, PageSize: size}.Normalize()
}
