package main

import (
	"log"
	"os"
	"time"

	"github.com/dtnitsch/sitemap-icons/internal/history"
	"github.com/dtnitsch/sitemap-icons/internal/run"
	"github.com/dtnitsch/sitemap-icons/pkg/artifacts"
	"github.com/dtnitsch/sitemap-icons/pkg/checkpoint"
	"github.com/dtnitsch/sitemap-icons/pkg/imagegen"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sitemap-icons",
		Usage: "generate icons for sitemap pages with a durable, resumable checkpoint",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Fetch the sitemap and generate one icon per eligible page",
				Action: run.RunAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sitemap",
						Usage: "sitemap URL to read candidates from",
						Value: "https://www.bitcoin.com/sitemap-0.xml",
					},
					&cli.StringFlag{
						Name:  "required-path",
						Usage: "path marker a URL must contain to be eligible",
						Value: "/get-started/",
					},
					&cli.StringFlag{
						Name:  "exclude",
						Usage: "comma-separated path markers that disqualify a URL",
						Value: "/de/,/es/,/fr/,/it/,/ru/,/zh/,/ja/",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "directory for generated icons",
						Value: artifacts.DefaultBaseDir,
					},
					&cli.StringFlag{
						Name:  "state-file",
						Usage: "checkpoint file path",
						Value: checkpoint.DefaultStateFile,
					},
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "pause between attempted items (provider rate-limiting courtesy)",
						Value: 2 * time.Second,
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "image provider credential",
						EnvVars: []string{"GEMINI_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "image model to request",
						Value: imagegen.DefaultModel,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "classify candidates without generating or mutating state",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
			},
			{
				Name:   "state",
				Usage:  "Show the checkpoint: processed count and every recorded failure",
				Action: run.StateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "state-file",
						Usage: "checkpoint file path",
						Value: checkpoint.DefaultStateFile,
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List recent runs from the history database",
				Action: history.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of runs to list",
						Value: 20,
					},
				},
			},
			{
				Name:      "run-info",
				Usage:     "Show per-item details for a run (defaults to the latest)",
				ArgsUsage: "[run-id]",
				Action:    history.RunInfoAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
