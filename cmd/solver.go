package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexiusacademia/goframe/internal/bridge"
	"github.com/spf13/cobra"
)

var (
	replayDir  string
	replayAddr string
	replayPath string
)

var solverCmd = &cobra.Command{
	Use:   "solver",
	Short: "Run a solver endpoint",
}

var solverReplayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Serve recorded results over the solver protocol",
	Long: `Serve results recorded by 'goframe solve --all' over the websocket
solver protocol. The model in each request is ignored; the answer is
the recorded file for the requested analysis type and target.

Useful for developing against a known result set without the real solver.

Examples:
  goframe solver replay --dir results/ --addr :8090`,
	RunE: runSolverReplay,
}

func init() {
	rootCmd.AddCommand(solverCmd)
	solverCmd.AddCommand(solverReplayCmd)

	solverReplayCmd.Flags().StringVar(&replayDir, "dir", "", "Directory of recorded results [required]")
	solverReplayCmd.Flags().StringVar(&replayAddr, "addr", ":8090", "Listen address")
	solverReplayCmd.Flags().StringVar(&replayPath, "path", "/solver", "Websocket endpoint path")

	solverReplayCmd.MarkFlagRequired("dir")
}

func runSolverReplay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := bridge.NewWorker(bridge.ReplaySolver{Dir: replayDir}, logger)

	mux := http.NewServeMux()
	mux.Handle(replayPath, bridge.Handler(worker, logger))
	srv := &http.Server{Addr: replayAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	fmt.Printf("Replaying %s on ws://%s%s\n", replayDir, replayAddr, replayPath)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down replay solver")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
