package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/poiesic/landmark"
	"github.com/poiesic/landmark/pattern"
	"github.com/poiesic/landmark/section"
	"github.com/poiesic/landmark/storage/badger"
	"github.com/poiesic/landmark/structure"
	"github.com/poiesic/landmark/text"
	"github.com/urfave/cli/v2"
)

// snippetLen caps the number of tokens printed after a match.
const snippetLen = 8

func outlineCommand(c *cli.Context) error {
	defer elapsed("outline", time.Now())
	if c.NArg() != 1 {
		return fmt.Errorf("outline expects exactly one FILE")
	}
	raw, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}

	detector, err := structure.NewDetector()
	if err != nil {
		return err
	}
	doc := detector.Detect(raw)
	return doc.Outline.Print(c.App.Writer, doc.TokensCased, c.Bool("numbered-only"))
}

func findCommand(c *cli.Context) error {
	defer elapsed("find", time.Now())
	analyzer, analyses, err := analyzeFiles(c)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	for i, an := range analyses {
		matches, err := analyzer.Find(c.Context, an, c.Int("padding"), c.StringSlice("name")...)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Args().Get(i), err)
		}
		if c.NArg() > 1 {
			fmt.Fprintf(c.App.Writer, "== %s\n", c.Args().Get(i))
		}
		if err := printMatches(c.App.Writer, an.Document, matches); err != nil {
			return err
		}
	}
	return nil
}

func sectionsCommand(c *cli.Context) error {
	defer elapsed("sections", time.Now())
	analyzer, analyses, err := analyzeFiles(c,
		landmark.WithSectionOptions(
			section.WithThreshold(c.Float64("threshold")),
			section.WithMaxSectionLen(c.Int("max-section-len")),
		),
	)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	for i, an := range analyses {
		sections, err := analyzer.Sections(c.Context, an, c.StringSlice("type")...)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Args().Get(i), err)
		}
		if c.NArg() > 1 {
			fmt.Fprintf(c.App.Writer, "== %s\n", c.Args().Get(i))
		}
		if err := printSections(c.App.Writer, an.Document, sections); err != nil {
			return err
		}
	}
	return nil
}

func cacheStatsCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("cache"), false)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	model := c.String("embedding-model")
	n, err := repo.CountEmbeddings(c.Context, model)
	if err != nil {
		return err
	}
	if model == "" {
		model = "all models"
	}
	fmt.Fprintf(c.App.Writer, "%d cached embeddings (%s)\n", n, model)
	return nil
}

func cacheClearCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("cache"), false)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	if err := repo.ClearEmbeddings(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "cache cleared")
	return nil
}

// analyzeFiles builds an Analyzer from the command flags and analyzes every FILE argument.
func analyzeFiles(c *cli.Context, extra ...landmark.AnalyzerOption) (*landmark.Analyzer, []*landmark.Analysis, error) {
	if c.NArg() == 0 {
		return nil, nil, fmt.Errorf("%s expects at least one FILE", c.Command.Name)
	}

	cfg, err := aiConfigFromFlags(c)
	if err != nil {
		return nil, nil, err
	}
	defs, err := loadDefinitions(c.String("patterns"))
	if err != nil {
		return nil, nil, err
	}

	texts := make([]string, c.NArg())
	for i, path := range c.Args().Slice() {
		if texts[i], err = readInput(c, path); err != nil {
			return nil, nil, err
		}
	}

	opts := []landmark.AnalyzerOption{
		landmark.WithAIConfig(cfg),
		landmark.WithDefinitions(defs),
		landmark.WithPoolSize(c.Int("workers")),
	}
	if n := c.Int("progress"); n > 0 {
		opts = append(opts, landmark.WithProgress(c.App.ErrWriter, n))
	}
	if path := c.String("cache"); path != "" {
		opts = append(opts, landmark.WithCache(path))
	}
	analyzer, err := landmark.NewAnalyzer(append(opts, extra...)...)
	if err != nil {
		return nil, nil, err
	}

	if err := analyzer.Prepare(c.Context); err != nil {
		analyzer.Close()
		return nil, nil, err
	}
	analyses, err := analyzer.AnalyzeAll(c.Context, texts)
	if err != nil {
		analyzer.Close()
		return nil, nil, err
	}
	return analyzer, analyses, nil
}

func loadDefinitions(path string) (*pattern.Definitions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open patterns: %w", err)
	}
	defer f.Close()

	defs, err := pattern.LoadDefinitions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// readInput reads a document from path, or from stdin when path is "-".
func readInput(c *cli.Context, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(c.App.Reader)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

func printMatches(w io.Writer, doc *structure.Document, matches map[string]pattern.Match) error {
	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := matches[name]
		note := ""
		if m.Degenerate {
			note = " degenerate"
		}
		_, err := fmt.Fprintf(w, "%-32s %6d  distance %.4f  confidence %.3f%s\t%s\n",
			name, m.Index, m.Distance, m.Confidence, note, snippet(doc, m.Index))
		if err != nil {
			return err
		}
	}
	return nil
}

func printSections(w io.Writer, doc *structure.Document, sections []section.Section) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "no sections found")
		return err
	}
	for i := range sections {
		s := &sections[i]
		_, err := fmt.Fprintf(w, "%-16s line %4d  tokens %d-%d  confidence %.3f\t%s\n",
			s.Type, s.Line, s.Body.Start, s.Body.End, s.Confidence, s.Title(doc))
		if err != nil {
			return err
		}
	}
	return nil
}

// snippet renders up to snippetLen tokens from index to the end of its line.
func snippet(doc *structure.Document, index int) string {
	if index < 0 || index >= len(doc.TokensCased) {
		return ""
	}
	_, end := text.SentenceBoundsAtIndex(doc.Tokens, index)
	end = min(end, index+snippetLen)
	if end <= index {
		return ""
	}
	return text.Untokenize(doc.TokensCased[index:end])
}
