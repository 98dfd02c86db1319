package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/quizcraft/backend/internal/config"
	"github.com/quizcraft/backend/internal/export"
	"github.com/quizcraft/backend/internal/generate"
	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/pipeline"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		inPath     = flag.String("in", "", "input text file (default: stdin)")
		outPath    = flag.String("out", "", "output file (default: stdout)")
		formatName = flag.String("format", "text", "output format: json, text, html, xlsx")
		count      = flag.Int("count", 0, "target question count")
		typeList   = flag.String("types", "", "comma-separated question types, e.g. multiple_choice,true_false")
		typeMix    = flag.String("typemix", "", "per-type counts, e.g. multiple_choice=3,true_false=2")
		difficulty = flag.String("difficulty", "", "difficulty mix, e.g. easy=2,medium=2,hard=1")
		seed       = flag.Int64("seed", -1, "shuffle seed for reproducible item order (-1 keeps reading order)")
		backend    = flag.String("backend", "", "generator backend: anthropic, openai, heuristic")
		sheet      = flag.Bool("sheet", false, "generate a study sheet instead of a quiz")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.GeneratorBackend = *backend
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		log.Fatal(err)
	}

	text, err := readInput(*inPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	quizCfg := cfg.QuizConfig()
	if *count > 0 {
		quizCfg.TargetItemCount = *count
	}
	if *typeList != "" {
		quizCfg.TypesAllowed, err = parseTypes(*typeList)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *typeMix != "" {
		quizCfg.TypeTarget, err = parseTypeTarget(*typeMix)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *difficulty != "" {
		quizCfg.DifficultyTarget, err = parseDifficulty(*difficulty)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *seed >= 0 {
		quizCfg.ShuffleSeed = seed
	}

	p := pipeline.New(pipeline.Capabilities{
		NewGenerator: func(units []models.ContentUnit) generate.Generator {
			return generate.ForBackend(cfg.GeneratorBackend, units)
		},
	})

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}
	defer closeOut()

	ctx := context.Background()
	if *sheet {
		result, err := p.GenerateStudySheet(ctx, text, quizCfg)
		if err != nil {
			log.Fatalf("Study sheet generation failed: %v", err)
		}
		if err := export.WriteStudySheet(out, result, format); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		return
	}

	quiz, err := p.GenerateQuiz(ctx, text, quizCfg)
	if err != nil {
		log.Fatalf("Quiz generation failed: %v", err)
	}
	if err := export.WriteQuiz(out, quiz, format); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func parseTypes(s string) ([]models.QuestionType, error) {
	var types []models.QuestionType
	for _, part := range strings.Split(s, ",") {
		qt := models.QuestionType(strings.TrimSpace(part))
		if !models.ValidQuestionTypes[qt] {
			return nil, fmt.Errorf("unknown question type %q", part)
		}
		types = append(types, qt)
	}
	return types, nil
}

func parseTypeTarget(s string) (map[models.QuestionType]int, error) {
	target := make(map[models.QuestionType]int)
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("type mix entry %q is not name=count", part)
		}
		qt := models.QuestionType(kv[0])
		if !models.ValidQuestionTypes[qt] {
			return nil, fmt.Errorf("unknown question type %q", kv[0])
		}
		n, err := strconv.Atoi(kv[1])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("type mix count %q is not a non-negative integer", kv[1])
		}
		target[qt] = n
	}
	return target, nil
}

func parseDifficulty(s string) (map[models.Difficulty]int, error) {
	target := make(map[models.Difficulty]int)
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("difficulty entry %q is not name=count", part)
		}
		d := models.Difficulty(kv[0])
		if !models.ValidDifficulties[d] {
			return nil, fmt.Errorf("unknown difficulty %q", kv[0])
		}
		n, err := strconv.Atoi(kv[1])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("difficulty count %q is not a non-negative integer", kv[1])
		}
		target[d] = n
	}
	return target, nil
}
