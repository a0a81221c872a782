package main

import (
	"fmt"
	"os"

	cacheCmd "github.com/ccomgroup/content-analyzer/internal/cache"
	dbCmd "github.com/ccomgroup/content-analyzer/internal/db"
	"github.com/ccomgroup/content-analyzer/internal/process"
	"github.com/ccomgroup/content-analyzer/internal/publish"
	"github.com/ccomgroup/content-analyzer/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "content-analyzer",
		Usage: "Analyze YouTube videos and GitHub repositories, then publish notes",
		Commands: []*cli.Command{
			{
				Name:  "process",
				Usage: "Fetch, summarize, and cache one or more URLs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "urls",
						Usage: "Comma-separated list of YouTube or GitHub URLs",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 4,
						Usage: "Number of concurrent workers",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Language hint for audio transcription (ISO 639-1)",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "Optional YAML file with default settings",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: "cache",
						Usage: "Directory for cached records",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Value: "0",
						Usage: "Cache entry lifetime (e.g. 24h); 0 means entries never expire",
					},
					&cli.BoolFlag{
						Name:  "force-fetch",
						Usage: "Skip the cache and reprocess every URL",
					},
					&cli.StringFlag{
						Name:  "model-type",
						Value: "openai",
						Usage: "Chat backend: openai or ollama",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Hosted chat model name",
					},
					&cli.StringFlag{
						Name:  "ollama-model",
						Usage: "Local Ollama model name",
					},
					&cli.StringFlag{
						Name:  "extractor-url",
						Usage: "Audio extraction service base URL (enables transcription fallback)",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "History database path (default: next to the binary)",
					},
					&cli.BoolFlag{
						Name:  "deep",
						Usage: "Include repository file tree and contents in the analysis",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "json",
						Usage: "Output format: json or yaml",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
				Action: process.ProcessAction,
			},
			{
				Name:      "publish",
				Usage:     "Publish a processed record as a weblink note",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "URL of a previously processed record",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: "cache",
						Usage: "Directory for cached records",
					},
					&cli.StringFlag{
						Name:  "work-dir",
						Usage: "Directory for locally generated preview artwork",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "History database path (default: next to the binary)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "json",
						Usage: "Output format: json or yaml",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
				Action: publish.PublishAction,
			},
			{
				Name:  "cache",
				Usage: "Inspect and manage the result cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: "cache",
						Usage: "Directory for cached records",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "json",
						Usage: "Output format: json or yaml",
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "ls",
						Usage:  "List cache entries",
						Action: cacheCmd.LsAction,
					},
					{
						Name:      "show",
						Usage:     "Print the full cached record for a URL",
						ArgsUsage: "<url>",
						Action:    cacheCmd.ShowAction,
					},
					{
						Name:   "clear",
						Usage:  "Remove all cache entries",
						Action: cacheCmd.ClearAction,
					},
				},
			},
			{
				Name:  "db",
				Usage: "Query the processing history database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "History database path (default: next to the binary)",
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:  "history",
						Usage: "List processed URLs with access and publish counts",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 50,
								Usage: "Maximum number of rows",
							},
						},
						Action: dbCmd.HistoryAction,
					},
					{
						Name:  "publishes",
						Usage: "List published notes, newest first",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 50,
								Usage: "Maximum number of rows",
							},
						},
						Action: dbCmd.PublishesAction,
					},
					{
						Name:      "find-url",
						Usage:     "Resolve a URL to its database ID",
						ArgsUsage: "<url>",
						Action:    dbCmd.FindURLAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a YAML quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
