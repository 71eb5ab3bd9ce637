package models

// Scoreboard is the engine's answer to a scoreboard query. Mode is nil when no
// mode filter was requested.
type Scoreboard struct {
	Mode   *Mode
	Scores []ScoreRecord
}

type ScoresResponse struct {
	Status string        `json:"status"`
	Scores []ScoreRecord `json:"scores"`
}

type ScoreboardResponse struct {
	Status string        `json:"status"`
	Mode   *Mode         `json:"mode"`
	Scores []ScoreRecord `json:"scores"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)
