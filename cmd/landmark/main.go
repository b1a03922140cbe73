// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/landmark/ai"
	"github.com/urfave/cli/v2"
)

const envPrefix = "LANDMARK_"

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "landmark",
		Usage: "Find structure and semantic landmarks in loosely formatted documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{envPrefix + "LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "outline",
				Usage:     "Print the inferred outline of a document",
				ArgsUsage: "FILE",
				Action:    outlineCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "numbered-only",
						Usage: "Only print numbered lines",
					},
				},
			},
			{
				Name:      "find",
				Usage:     "Find the best position of each pattern in documents",
				ArgsUsage: "FILE...",
				Action:    findCommand,
				Flags: append(analysisFlags(),
					&cli.StringSliceFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Only search for the named patterns, groups or compounds",
					},
					&cli.IntFlag{
						Name:  "padding",
						Usage: "Number of trailing positions excluded from the search",
						Value: 0,
					},
				),
			},
			{
				Name:      "sections",
				Usage:     "Locate sections in documents by their headline patterns",
				ArgsUsage: "FILE...",
				Action:    sectionsCommand,
				Flags: append(analysisFlags(),
					&cli.StringSliceFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Only locate the given section types",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Pattern attention below this value is ignored",
						Value: 0.3,
					},
					&cli.IntFlag{
						Name:  "max-section-len",
						Usage: "Maximum section length in tokens",
						Value: 5000,
					},
				),
			},
			{
				Name:  "cache",
				Usage: "Inspect or clear the embedding cache",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "Count cached embeddings",
						Action: cacheStatsCommand,
						Flags: []cli.Flag{
							cacheFlag(true),
							&cli.StringFlag{
								Name:  "embedding-model",
								Usage: "Only count embeddings of this model",
							},
						},
					},
					{
						Name:   "clear",
						Usage:  "Remove every cached embedding",
						Action: cacheClearCommand,
						Flags:  []cli.Flag{cacheFlag(true)},
					},
				},
			},
		},
	}
}

func cacheFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "cache",
		Aliases:  []string{"c"},
		Usage:    "Path to BadgerDB embedding cache directory",
		EnvVars:  []string{envPrefix + "CACHE"},
		Required: required,
	}
}

// analysisFlags are shared by every command that embeds documents.
func analysisFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "patterns",
			Aliases:  []string{"p"},
			Usage:    "YAML file with pattern definitions",
			EnvVars:  []string{envPrefix + "PATTERNS"},
			Required: true,
		},
		cacheFlag(false),
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   ai.DefaultHost,
			EnvVars: []string{envPrefix + "EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   ai.DefaultModel,
			EnvVars: []string{envPrefix + "EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the embedding service",
			EnvVars: []string{envPrefix + "API_KEY"},
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of texts sent per embedding request",
			Value: ai.DefaultBatchSize,
		},
		&cli.IntFlag{
			Name:  "context-radius",
			Usage: "Neighbouring tokens embedded together with each token",
			Value: ai.DefaultContextRadius,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum attempts per embedding request",
			Value: ai.DefaultMaxRetries,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: ai.DefaultRetryDelay,
		},
		&cli.IntFlag{
			Name:  "progress",
			Usage: "Report progress on stderr every N documents (0 disables)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Worker pool size (0 selects half the CPUs)",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithBatchSize(c.Int("batch-size")),
		ai.WithContextRadius(c.Int("context-radius")),
		ai.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// elapsed is reported at debug level after each command.
func elapsed(command string, start time.Time) {
	slog.Debug("command finished", "command", command, "elapsed", time.Since(start))
}
