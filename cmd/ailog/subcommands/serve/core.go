//
//  Copyright © Manetu Inc. All rights reserved.
//

package serve

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/Chavda-Mitul/AI-Logger/pkg/ingest"
	"github.com/urfave/cli/v3"
)

var logger = logging.GetLogger("ailog.cli")

const agent string = "serve"

const shutdownTimeout = 10 * time.Second

// Command returns the definition of the serve command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Runs a local ingest server that accepts requests from the SDK loggers",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "The TCP port to serve on.",
				Value: 9000,
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "Accept only this API key.  If not specified, any non-empty key is accepted.",
			},
			&cli.StringFlag{
				Name:  "sink",
				Usage: "Append accepted entries as JSON lines to `FILE`, or use '-' for stdout",
			},
		},
		Action: Execute,
	}
}

func openSink(cmd *cli.Command) (io.Writer, func() error, error) {
	switch path := cmd.String("sink"); path {
	case "":
		return nil, func() error { return nil }, nil
	case "-":
		return cmd.Root().Writer, func() error { return nil }, nil
	default:
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- CLI tool intentionally writes user-provided paths
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
}

// Execute runs the serve command and blocks until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func Execute(ctx context.Context, cmd *cli.Command) error {
	sink, closeSink, err := openSink(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeSink() }()

	server, err := ingest.CreateServer(cmd.Int("port"), ingest.Options{
		APIKey: cmd.String("api-key"),
		Sink:   sink,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	logger.Info(agent, "shutdown", "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return err
	}

	logger.Info(agent, "shutdown", "Server exited gracefully.")
	return nil
}
