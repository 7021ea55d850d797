// Package response writes API results: JSON on success, Werkzeug-style HTML
// pages on errors.
package response

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
)

// Success writes a 200 JSON body.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Empty writes a 200 with no body.
func Empty(c *gin.Context) {
	c.Status(http.StatusOK)
}

// BadRequest writes the 400 page.
func BadRequest(c *gin.Context, msg string) {
	Page(c, http.StatusBadRequest, msg)
}

// Error maps a domain error to its status page. Unknown errors become 500.
func Error(c *gin.Context, err error) {
	var (
		nf  *domain.NotFoundError
		fb  *domain.ForbiddenError
		cf  *domain.ConflictError
		val *domain.ValidationError
	)
	switch {
	case errors.As(err, &fb):
		Page(c, http.StatusForbidden, fb.Message)
	case errors.As(err, &nf):
		Page(c, http.StatusNotFound, nf.Error())
	case errors.As(err, &cf):
		Page(c, http.StatusConflict, cf.Message)
	case errors.As(err, &val):
		Page(c, http.StatusBadRequest, val.Message)
	default:
		_ = c.Error(err)
		Page(c, http.StatusInternalServerError, "The server encountered an internal error.")
	}
}

// Page writes an HTML error document whose title and heading carry the status text.
func Page(c *gin.Context, status int, msg string) {
	text := http.StatusText(status)
	body := fmt.Sprintf("<!doctype html>\n<html lang=en>\n<title>%d %s</title>\n<h1>%s</h1>\n<p>%s</p>\n",
		status, text, text, html.EscapeString(msg))
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}
