// Package v1 implements the HTTP handlers for the first API version.
package v1

import (
	"errors"
	"net/http"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
//
// A resource that does not exist and a resource that belongs to
// another user both map to 404, existence of other users' resources is
// never leaked.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Signup and login errors
var (
	errFieldsMissing = errors.New("name, email and password must all be set")
	errLoginFailed   = errors.New("invalid email or password")
)

// Invoice upload errors
var (
	errNoFilePost       = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix  = errors.New("this endpoint only supports files of the following types: .png, .jpg, .jpeg, .bmp, .tiff")
	errUnreadableImage  = errors.New("no text could be extracted from this image. Try a clearer image")
	errOCRNotConfigured = errors.New("receipt scanning is not configured on this server")
)
