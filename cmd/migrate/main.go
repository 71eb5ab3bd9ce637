package main

import (
	"context"
	"log"
	"os"

	"scoreservice/internal/datastore"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
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
	vs, err := env.EnvsRequired(
		"SCORES_DSN",
	)
	if err != nil {
		log.Fatal(err)
	}

	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(vs),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration(vs map[string]string) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the scores table and its indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-password",
				EnvVars: []string{"DB_PASSWORD"},
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db := datastore.OpenPostgres(vs["SCORES_DSN"], c.String("db-password"))
			defer db.Close()

			if err := db.PingContext(ctx); err != nil {
				return err
			}

			if err := datastore.CreateTableScore(ctx, db); err != nil {
				return err
			}

			log.Println("scores table ready")
			return nil
		},
	}
}
