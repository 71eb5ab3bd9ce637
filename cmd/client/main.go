package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"
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

type request struct {
	title string
	path  string
}

func main() {
	app := &cli.App{
		Name:  "client",
		Usage: "run the sample queries against a running score service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Value:   "http://127.0.0.1:5001",
				EnvVars: []string{"SCORES_BASE_URL"},
			},
			&cli.StringFlag{
				Name:  "user",
				Value: "adrian",
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: "Easy",
			},
		},
		Action: func(c *cli.Context) error {
			client := httpclient.NewClient(
				httpclient.WithHTTPTimeout(5*time.Second),
				httpclient.WithRetryCount(2),
			)

			user, mode := c.String("user"), c.String("mode")
			requests := []request{
				{fmt.Sprintf("GET /scores/%s (all scores for '%s')", user, user), "/scores/" + url.PathEscape(user)},
				{fmt.Sprintf("GET /scores/%s/%s (%s mode scores for '%s')", user, mode, mode, user), "/scores/" + url.PathEscape(user) + "/" + url.PathEscape(mode)},
				{"GET /scoreboard (all users, all modes)", "/scoreboard"},
				{fmt.Sprintf("GET /scoreboard?mode=%s (all users, %s mode only)", mode, mode), "/scoreboard?" + url.Values{"mode": {mode}}.Encode()},
			}

			for i, req := range requests {
				resp, err := client.Get(c.String("base-url")+req.path, nil)
				if err != nil {
					return err
				}

				body, err := io.ReadAll(resp.Body)
				resp.Body.Close()
				if err != nil {
					return err
				}

				fmt.Printf("\n---- %d. %s ----\n", i+1, req.title)
				fmt.Printf("Status code: %d\n", resp.StatusCode)
				fmt.Println(prettyJSON(body))
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// prettyJSON indents body, or returns it unchanged when it is not JSON.
func prettyJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}
