package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"scoreservice/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/labstack/echo/v4"
)

// RestAbort writes err as an error envelope with the status of its errorx
// kind. Service failures and unclassified errors are logged and masked.
func RestAbort(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	var target *errorx.Error
	if errors.As(err, &target) {
		status = target.Status()
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[api] %s %s: %v\n", c.Request().Method, c.Request().URL.Path, err)
	}

	return c.JSON(status, models.ErrorResponse{Status: models.StatusError, Message: errorx.MaskErrorMessage(err)})
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		//nolint:errcheck
		RestAbort(c, err)
		return
	}

	if c.Request().Method == http.MethodHead {
		//nolint:errcheck
		c.NoContent(he.Code)
		return
	}

	message := fmt.Sprint(he.Message)
	if he.Code >= http.StatusInternalServerError {
		log.Printf("[api] %s %s: %v\n", c.Request().Method, c.Request().URL.Path, err)
	}

	//nolint:errcheck
	c.JSON(he.Code, models.ErrorResponse{Status: models.StatusError, Message: message})
}
