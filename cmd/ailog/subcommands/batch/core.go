//
//  Copyright © Manetu Inc. All rights reserved.
//

package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Chavda-Mitul/AI-Logger/cmd/ailog/common"
	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	pcommon "github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

var logger = logging.GetLogger("ailog.cli")

const agent string = "batch"

// Result is printed when the batch completes.
type Result struct {
	Logged int `json:"logged"`
}

// deliveries tallies entries dropped by failed flushes.
type deliveries struct {
	mu      sync.Mutex
	dropped int
	lastErr error
}

func (d *deliveries) observe(r types.FlushResult) {
	if !r.Dropped() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dropped += r.Entries
	d.lastErr = r.Err
}

func (d *deliveries) err(total int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dropped == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d interactions were not delivered: %w", d.dropped, total, d.lastErr)
}

// Command returns the definition of the batch command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Logs a file of AI interactions through the buffered compliance logger",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Load interactions from `FILE` (a YAML or JSON list), or use '-' for stdin",
				Value:   "-",
			},
			&cli.IntFlag{
				Name:  "buffer-size",
				Usage: "Number of buffered entries that triggers a flush",
			},
			&cli.DurationFlag{
				Name:  "flush-interval",
				Usage: "Maximum time an entry waits in the buffer",
			},
		}, common.ConnectionFlags()...),
		Action: Execute,
	}
}

// Load reads a list of interactions from r.
func Load(r io.Reader) ([]types.Interaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []types.Interaction
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing interactions: %w", err)
	}

	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}

func open(cmd *cli.Command) (io.ReadCloser, error) {
	path := cmd.String("input")
	if path == "-" || path == "" {
		return io.NopCloser(cmd.Root().Reader), nil
	}
	return os.Open(path) // #nosec G304 -- CLI tool intentionally reads user-provided paths
}

// Execute runs the batch command. Every record is validated before any is
// logged, so a bad file logs nothing. Entries lost to any failed flush, not
// only the last one, make the command fail.
func Execute(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	f, err := open(cmd)
	if err != nil {
		return err
	}
	records, err := Load(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	opts := common.LoggerOptions(cmd, out)
	if cmd.IsSet("buffer-size") {
		opts = append(opts, options.WithBufferSize(cmd.Int("buffer-size")))
	}
	if cmd.IsSet("flush-interval") {
		opts = append(opts, options.WithFlushInterval(cmd.Duration("flush-interval")))
	}

	var d deliveries
	opts = append(opts, options.WithFlushHook(d.observe))

	cl, err := core.NewComplianceLogger(opts...)
	if err != nil {
		return err
	}

	for i, record := range records {
		if _, err := cl.Log(ctx, record); err != nil {
			_ = cl.Close(ctx)
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	logger.Debugf(agent, "Execute", "logged %d interactions, %d pending", len(records), cl.Pending())

	closeErr := cl.Close(ctx)
	if err := d.err(len(records)); err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	pcommon.PrettyPrint(out, Result{Logged: len(records)})
	return nil
}
