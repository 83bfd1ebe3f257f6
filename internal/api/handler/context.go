package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// FileStore is the upload collaborator used by handlers that accept images.
// Implementations assign a storage-unique name and return a public path.
type FileStore interface {
	Save(src io.Reader, originalName string) (string, error)
}

// ctxEmail extracts the identity claim injected by the Auth middleware.
// An empty claim means the middleware did not run on this route.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}

// formUpload stores the named multipart file and returns its public path.
// When required is false a missing file yields ("", nil).
func formUpload(c echo.Context, files FileStore, field string, required bool) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if !required && errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, "no file provided")
	}

	src, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	path, err := files.Save(src, fh.Filename)
	if err != nil {
		return "", err
	}
	return path, nil
}
