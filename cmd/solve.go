package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/goframe/internal/bridge"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/results"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	solveModel    string
	solveSolver   string
	solveType     string
	solveTarget   string
	solveOutput   string
	solveAll      bool
	solveParallel int
	solveTimeout  time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run a model through the solver",
	Long: `Send a model to a solver over the websocket bridge and save the result.

The solver is initialized first; analyze requests are rejected until it
reports ready. With --all every load case and combination of the model is
requested at once and written to the directory given by --output using the
layout 'goframe solver replay' reads back:

  simple.json
  cases/<load case>.json
  combinations/<combination>.json

Examples:
  # Full model
  goframe solve --model portal.json -o simple.json

  # One load case against a remote solver
  goframe solve --model portal.json --type loadCase --target W --solver ws://solver:8090/solver -o wind.json

  # Everything
  goframe solve --model portal.json --all -o results/`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveModel, "model", "m", "", "Model JSON file [required]")
	solveCmd.Flags().StringVarP(&solveSolver, "solver", "s", "", "Solver websocket URL (default from config)")
	solveCmd.Flags().StringVarP(&solveType, "type", "t", "simple", "Analysis type: simple, loadCase or combination")
	solveCmd.Flags().StringVar(&solveTarget, "target", "", "Load case or combination name")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "Result file, or directory with --all (default stdout)")
	solveCmd.Flags().BoolVarP(&solveAll, "all", "a", false, "Solve the model, every load case and every combination")
	solveCmd.Flags().IntVar(&solveParallel, "parallel", 4, "Requests kept in flight with --all")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Overall timeout (default from config)")

	solveCmd.MarkFlagRequired("model")
}

// solveJob is one analysis and where its result goes
type solveJob struct {
	req  bridge.AnalyzeRequest
	file string
}

func runSolve(cmd *cobra.Command, args []string) error {
	m, err := model.LoadFromFile(solveModel)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	serialized, err := m.Serialize()
	if err != nil {
		return err
	}

	timeout := solveTimeout
	if timeout == 0 {
		timeout = time.Duration(cfg.Solver.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	url := solveSolver
	if url == "" {
		url = cfg.Solver.URL
	}
	conn, err := bridge.Dial(ctx, url)
	if err != nil {
		return fmt.Errorf("connect to solver at %s: %w", url, err)
	}
	client := bridge.NewClient(conn, logger)
	defer client.Close()

	logger.Info("initializing solver", "url", url)
	if err := client.Init(ctx); err != nil {
		return err
	}

	if !solveAll {
		at, err := bridge.ParseAnalysisType(solveType)
		if err != nil {
			return err
		}
		r, err := client.Analyze(ctx, bridge.AnalyzeRequest{Model: serialized, AnalysisType: at, Target: solveTarget})
		if err != nil {
			return err
		}
		if solveOutput == "" {
			return writeJSON(os.Stdout, r)
		}
		if err := saveResult(solveOutput, r); err != nil {
			return err
		}
		done("Result saved to: %s", solveOutput)
		return nil
	}

	if solveOutput == "" {
		return fmt.Errorf("--all needs an output directory")
	}
	jobs := allJobs(m, serialized, solveOutput)
	return solveJobs(ctx, client, jobs)
}

func allJobs(m *model.Model, serialized, dir string) []solveJob {
	reqs := []bridge.AnalyzeRequest{{Model: serialized, AnalysisType: bridge.AnalysisSimple}}
	for _, c := range m.Cases() {
		reqs = append(reqs, bridge.AnalyzeRequest{Model: serialized, AnalysisType: bridge.AnalysisLoadCase, Target: c})
	}
	for _, c := range m.Combinations {
		reqs = append(reqs, bridge.AnalyzeRequest{Model: serialized, AnalysisType: bridge.AnalysisCombination, Target: c.Name})
	}

	jobs := make([]solveJob, len(reqs))
	for i, req := range reqs {
		jobs[i] = solveJob{req: req, file: filepath.Join(dir, bridge.ResultFile(req.AnalysisType, req.Target))}
	}
	return jobs
}

// solveJobs keeps up to solveParallel requests in flight. The solver still
// runs them one at a time; responses are matched by id.
func solveJobs(ctx context.Context, client *bridge.Client, jobs []solveJob) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(solveParallel, 1))

	elapsed := make([]time.Duration, len(jobs))

	for i, job := range jobs {
		g.Go(func() error {
			start := time.Now()
			r, err := client.Analyze(ctx, job.req)
			if err != nil {
				return fmt.Errorf("%s %s: %w", job.req.AnalysisType, job.req.Target, err)
			}
			if err := saveResult(job.file, r); err != nil {
				return err
			}
			elapsed[i] = time.Since(start)
			logger.Debug("analysis saved", "type", job.req.AnalysisType, "target", job.req.Target, "file", job.file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Analysis\tTarget\tFile\tTime\n")
	fmt.Fprintf(w, "  ────────\t──────\t────\t────\n")
	for i, job := range jobs {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", job.req.AnalysisType, job.req.Target, job.file, elapsed[i].Round(time.Millisecond))
	}
	w.Flush()
	fmt.Println()
	done("%d results saved", len(jobs))
	return nil
}

func saveResult(path string, r *results.AnalysisResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeJSON(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(f *os.File, v any) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadResults reads a result file written by solve or by the solver itself
func loadResults(path string) (*results.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return results.Decode(data)
}
