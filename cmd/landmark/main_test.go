package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/landmark/ai"
	"github.com/poiesic/landmark/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

var agreement = strings.Join([]string{
	"1. Definitions",
	"The words used here mean what they say.",
	"2. Payment Terms",
	"The buyer pays within thirty days.",
	"3. Governing Law",
	"This agreement follows the law of Ruritania.",
}, "\n")

const patternsYAML = `
patterns:
  - name: headline.payment
    text: payment terms
  - name: headline.law
    text: governing law
`

// newEmbeddingServer answers /v1/embeddings with bag-of-words vectors.
func newEmbeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		type item struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, len(req.Input))
		for i, text := range req.Input {
			data[i] = item{Object: "embedding", Embedding: mock.BagOfWords(text, mock.DefaultDimension), Index: i}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 0, "total_tokens": 0},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"landmark"}, args...))
	return out.String(), err
}

func TestOutlineCommand(t *testing.T) {
	doc := writeFile(t, "agreement.txt", agreement)

	t.Run("prints every line", func(t *testing.T) {
		out, err := runApp(t, "outline", doc)
		require.NoError(t, err)
		assert.Contains(t, out, "Payment Terms")
		assert.Contains(t, out, "The buyer pays within thirty days")
	})

	t.Run("numbered only", func(t *testing.T) {
		out, err := runApp(t, "outline", "--numbered-only", doc)
		require.NoError(t, err)
		assert.Contains(t, out, "Governing Law")
		assert.NotContains(t, out, "thirty days")
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	})

	t.Run("requires a file", func(t *testing.T) {
		_, err := runApp(t, "outline")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runApp(t, "outline", filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read document")
	})
}

func TestFindCommand(t *testing.T) {
	srv := newEmbeddingServer(t)
	doc := writeFile(t, "agreement.txt", agreement)
	patterns := writeFile(t, "patterns.yaml", patternsYAML)
	cache := filepath.Join(t.TempDir(), "cache")

	args := []string{"find",
		"--patterns", patterns,
		"--embedding-host", srv.URL,
		"--context-radius", "0",
		"--max-retries", "1",
		"--cache", cache,
	}

	t.Run("all patterns", func(t *testing.T) {
		out, err := runApp(t, append(args, doc)...)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "headline.law"))
		assert.Contains(t, lines[0], "Governing Law")
		assert.True(t, strings.HasPrefix(lines[1], "headline.payment"))
		assert.Contains(t, lines[1], "Payment Terms")
	})

	t.Run("named pattern over two files", func(t *testing.T) {
		out, err := runApp(t, append(args, "--name", "headline.payment", doc, doc)...)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "== "+doc))
		assert.Equal(t, 2, strings.Count(out, "headline.payment"))
		assert.NotContains(t, out, "headline.law")
	})

	t.Run("progress", func(t *testing.T) {
		out, err := runApp(t, append(args, "--progress", "1", doc, doc)...)
		require.NoError(t, err)
		assert.Contains(t, out, "Progress: 2/2")
	})

	t.Run("unknown pattern", func(t *testing.T) {
		_, err := runApp(t, append(args, "--name", "nope", doc)...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown pattern")
	})

	t.Run("cache is filled", func(t *testing.T) {
		out, err := runApp(t, "cache", "stats", "--cache", cache)
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(out, "0 "), out)
		assert.Contains(t, out, "all models")

		out, err = runApp(t, "cache", "clear", "--cache", cache)
		require.NoError(t, err)
		assert.Contains(t, out, "cache cleared")

		out, err = runApp(t, "cache", "stats", "--cache", cache)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "0 cached embeddings"), out)
	})

	t.Run("patterns are required", func(t *testing.T) {
		_, err := runApp(t, "find", doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "patterns")
	})
}

func TestSectionsCommand(t *testing.T) {
	srv := newEmbeddingServer(t)
	doc := writeFile(t, "agreement.txt", agreement)
	patterns := writeFile(t, "patterns.yaml", patternsYAML)

	out, err := runApp(t, "sections",
		"--patterns", patterns,
		"--embedding-host", srv.URL,
		"--context-radius", "0",
		"--max-retries", "1",
		doc,
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "payment"))
	assert.Contains(t, lines[0], "2. Payment Terms")
	assert.True(t, strings.HasPrefix(lines[1], "law"))
	assert.Contains(t, lines[1], "3. Governing Law")
}

func TestAIConfigFromFlags(t *testing.T) {
	run := func(t *testing.T, args ...string) (*ai.Config, error) {
		var cfg *ai.Config
		app := &cli.App{
			Name:  "test",
			Flags: analysisFlags(),
			Action: func(c *cli.Context) error {
				var err error
				cfg, err = aiConfigFromFlags(c)
				return err
			},
		}
		err := app.Run(append([]string{"test", "--patterns", "p.yaml"}, args...))
		return cfg, err
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := run(t)
		require.NoError(t, err)
		assert.Equal(t, ai.DefaultHost, cfg.EmbeddingHost)
		assert.Equal(t, ai.DefaultModel, cfg.EmbeddingModel)
		assert.Equal(t, ai.DefaultBatchSize, cfg.BatchSize)
		assert.Equal(t, ai.DefaultContextRadius, cfg.ContextRadius)
		assert.Equal(t, ai.DefaultMaxRetries, cfg.MaxRetries)
		assert.Equal(t, ai.DefaultRetryDelay, cfg.RetryDelay)
	})

	t.Run("flags", func(t *testing.T) {
		cfg, err := run(t,
			"--embedding-host", "http://example.com",
			"--embedding-model", "nomic",
			"--retry-delay", "2s",
		)
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/v1", cfg.EmbeddingHost)
		assert.Equal(t, "nomic", cfg.EmbeddingModel)
		assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("LANDMARK_EMBEDDING_MODEL", "from-env")
		t.Setenv("LANDMARK_API_KEY", "secret")
		cfg, err := run(t)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.EmbeddingModel)
		assert.Equal(t, "secret", cfg.APIKey)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := run(t, "--batch-size", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid AI configuration")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"WaRn", slog.LevelWarn},
			{"ERROR", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "log-level", Value: "info"},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				require.NoError(t, app.Run([]string{"test", "--log-level", tc.input}))
				assert.True(t, slog.Default().Enabled(t.Context(), tc.expected))
				assert.False(t, slog.Default().Enabled(t.Context(), tc.expected-1))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		_, err := runApp(t, "--log-level", "loud", "outline", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log level from environment", func(t *testing.T) {
		t.Setenv("LANDMARK_LOG_LEVEL", "nonsense")
		_, err := runApp(t, "outline", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nonsense")
	})
}
