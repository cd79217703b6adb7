package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"autosuggest/internal/autocomplete"
	"autosuggest/internal/logger"
	"autosuggest/internal/validation"
)

func main() {
	app := &cli.App{
		Name:  "suggest",
		Usage: "Interactive client and admin tool for the autosuggest server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(c.String("log-level"), "text")
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "interactive",
				Usage: "Type queries line by line and navigate suggestions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "server",
						Aliases: []string{"s"},
						Value:   "http://localhost:3000",
						Usage:   "Base URL of the suggestion server",
						EnvVars: []string{"SUGGEST_SERVER"},
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   validation.DefaultLimit,
						Usage:   "Maximum suggestions per query",
					},
					&cli.DurationFlag{
						Name:  "debounce",
						Value: autocomplete.DefaultDelay,
						Usage: "Quiet period before a query is sent",
					},
					&cli.StringFlag{
						Name:    "image-base",
						Usage:   "Base URL for suggestion thumbnails",
						EnvVars: []string{"IMAGE_BASE_URL"},
					},
				},
				Action: interactiveCommand,
			},
			{
				Name:      "search",
				Usage:     "Run a single ranking query and print the result",
				ArgsUsage: "[query]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "server",
						Aliases: []string{"s"},
						Value:   "http://localhost:3000",
						EnvVars: []string{"SUGGEST_SERVER"},
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   validation.DefaultLimit,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: 5 * time.Second,
					},
				},
				Action: searchCommand,
			},
			{
				Name:  "admin",
				Usage: "Manage terms directly in the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "database-url",
						Usage:    "PostgreSQL connection string",
						EnvVars:  []string{"DATABASE_URL"},
						Required: true,
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:      "seed",
						Usage:     "Load terms from a YAML seed file",
						ArgsUsage: "<file>",
						Action:    seedCommand,
					},
					{
						Name:      "add",
						Usage:     "Add a single term",
						ArgsUsage: "<term>",
						Flags: []cli.Flag{
							&cli.Int64Flag{Name: "popularity"},
							&cli.StringFlag{Name: "description"},
							&cli.StringFlag{Name: "image-ref"},
						},
						Action: addCommand,
					},
					{
						Name:      "reset",
						Usage:     "Reset a term's popularity to zero",
						ArgsUsage: "<term>",
						Action:    resetCommand,
					},
					{
						Name:  "top",
						Usage: "List the most popular terms",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: validation.DefaultLimit},
						},
						Action: topCommand,
					},
				},
			},
		},
		DefaultCommand: "interactive",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
