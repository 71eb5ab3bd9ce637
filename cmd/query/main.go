package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"scoreservice/internal/datastore"
	"scoreservice/internal/models"
	"scoreservice/internal/pkg/caching"
	"scoreservice/internal/services"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name:  "query",
		Usage: "answer score queries straight from a scores file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Value:   services.DEFAULT_SCORES_FILE,
				EnvVars: []string{"SCORES_FILE"},
			},
			&cli.BoolFlag{
				Name:    "normalize-stored",
				EnvVars: []string{"SCORES_NORMALIZE_STORED"},
			},
		},
		Commands: []*cli.Command{
			commandUser(),
			commandUserMode(),
			commandScoreboard(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandUser() *cli.Command {
	return &cli.Command{
		Name:      "user",
		Usage:     "all scores of a user",
		ArgsUsage: "<username>",
		Action: func(c *cli.Context) error {
			service, err := newService(c)
			if err != nil {
				return err
			}

			scores, err := service.GetUserScores(context.Background(), c.Args().First())
			if err != nil {
				return err
			}
			return printJSON(models.ScoresResponse{Status: models.StatusOK, Scores: scores})
		},
	}
}

func commandUserMode() *cli.Command {
	return &cli.Command{
		Name:      "user-mode",
		Usage:     "scores of a user in one mode",
		ArgsUsage: "<username> <mode>",
		Action: func(c *cli.Context) error {
			service, err := newService(c)
			if err != nil {
				return err
			}

			scores, err := service.GetUserScoresByMode(context.Background(), c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			return printJSON(models.ScoresResponse{Status: models.StatusOK, Scores: scores})
		},
	}
}

func commandScoreboard() *cli.Command {
	return &cli.Command{
		Name:  "scoreboard",
		Usage: "scores of every user, optionally for one mode",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "mode",
			},
		},
		Action: func(c *cli.Context) error {
			service, err := newService(c)
			if err != nil {
				return err
			}

			board, err := service.GetScoreboard(context.Background(), c.String("mode"))
			if err != nil {
				return err
			}
			return printJSON(models.ScoreboardResponse{Status: models.StatusOK, Mode: board.Mode, Scores: board.Scores})
		},
	}
}

func newService(c *cli.Context) (*services.ServiceScore, error) {
	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*datastore.ScoreCollection, error) {
		scores := datastore.LoadScoresFile(c.String("data"))
		if c.Bool("normalize-stored") {
			scores = scores.WithNormalizedModes()
		}
		return scores, nil
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		return caching.NewCacheRedis(nil, false)
	})

	do.Provide(injector, services.NewServiceScore)

	return do.Invoke[*services.ServiceScore](injector)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
