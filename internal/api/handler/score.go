package handler

import (
	"net/http"
	"scoreservice/internal/models"
	"scoreservice/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupScore struct {
	container *do.Injector
}

func (gr *groupScore) GetUserScores(c echo.Context) error {
	serviceScore, err := do.Invoke[*services.ServiceScore](gr.container)
	if err != nil {
		return RestAbort(c, errorx.Wrap(err, errorx.Service))
	}

	scores, err := serviceScore.GetUserScores(c.Request().Context(), c.Param("username"))
	if err != nil {
		return RestAbort(c, err)
	}

	return c.JSON(http.StatusOK, models.ScoresResponse{Status: models.StatusOK, Scores: scores})
}

func (gr *groupScore) GetUserScoresByMode(c echo.Context) error {
	serviceScore, err := do.Invoke[*services.ServiceScore](gr.container)
	if err != nil {
		return RestAbort(c, errorx.Wrap(err, errorx.Service))
	}

	scores, err := serviceScore.GetUserScoresByMode(c.Request().Context(), c.Param("username"), c.Param("mode"))
	if err != nil {
		return RestAbort(c, err)
	}

	return c.JSON(http.StatusOK, models.ScoresResponse{Status: models.StatusOK, Scores: scores})
}

// GetScoreboard serves /scoreboard?mode=. An empty mode parameter is treated
// like a missing one.
func (gr *groupScore) GetScoreboard(c echo.Context) error {
	serviceScore, err := do.Invoke[*services.ServiceScore](gr.container)
	if err != nil {
		return RestAbort(c, errorx.Wrap(err, errorx.Service))
	}

	board, err := serviceScore.GetScoreboard(c.Request().Context(), c.QueryParam("mode"))
	if err != nil {
		return RestAbort(c, err)
	}

	scores := board.Scores
	if scores == nil {
		scores = []models.ScoreRecord{}
	}

	return c.JSON(http.StatusOK, models.ScoreboardResponse{Status: models.StatusOK, Mode: board.Mode, Scores: scores})
}
