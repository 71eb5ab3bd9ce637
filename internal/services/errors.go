package services

import (
	"fmt"

	"scoreservice/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
)

func ErrInvalidMode(rawMode string) error {
	return errorx.Wrap(fmt.Errorf("Invalid mode: %s", rawMode), errorx.Invalid)
}

func ErrUserScoresNotFound(username string) error {
	return errorx.Wrap(fmt.Errorf("No scores found for user: %s", username), errorx.NotExist)
}

func ErrUserModeScoresNotFound(username string, mode models.Mode) error {
	return errorx.Wrap(fmt.Errorf("No scores found for user '%s' in mode '%s'", username, mode), errorx.NotExist)
}
