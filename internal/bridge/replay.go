package bridge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReplaySolver answers analyses from result files recorded earlier by a real
// solver. The directory layout is:
//
//	simple.json
//	cases/<load case>.json
//	combinations/<combination>.json
//
// The model is ignored.
type ReplaySolver struct {
	Dir string
}

// Init checks that the directory exists.
func (s ReplaySolver) Init(ctx context.Context) error {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.Dir)
	}
	return nil
}

func (s ReplaySolver) AnalyzeModel(ctx context.Context, model string) (string, error) {
	return s.read(ResultFile(AnalysisSimple, ""))
}

func (s ReplaySolver) AnalyzeLoadCase(ctx context.Context, model, loadCase string) (string, error) {
	return s.read(ResultFile(AnalysisLoadCase, loadCase))
}

func (s ReplaySolver) AnalyzeCombination(ctx context.Context, model, combination string) (string, error) {
	return s.read(ResultFile(AnalysisCombination, combination))
}

func (s ReplaySolver) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("no recorded result: %w", err)
	}
	return string(data), nil
}

// ResultFile returns the path, relative to a result directory, where the
// result of one analysis is recorded. The path never leaves the directory.
func ResultFile(at AnalysisType, target string) string {
	switch at {
	case AnalysisLoadCase:
		return filepath.Join("cases", FileName(target))
	case AnalysisCombination:
		return filepath.Join("combinations", FileName(target))
	}
	return "simple.json"
}

// FileName is the file a named case or combination result is stored under.
func FileName(name string) string {
	return safeName(name) + ".json"
}

// safeName keeps a case or combination name from escaping the directory
func safeName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(name)
}
