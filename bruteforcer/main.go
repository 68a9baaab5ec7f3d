// Command bruteforcer hammers a running gridpath server with random wall
// layouts. Each attempt resets the session, toggles a random set of walls
// through the REST API, searches, and checks the server's answer against a
// local replay of the same layout.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridpath/game/engine"
)

// Options tune a brute force run
type Options struct {
	ConfigID string
	Attempts int
	Density  float64
	Seed     uint64
	Delay    time.Duration
}

// Summary counts the outcomes of a run
type Summary struct {
	Attempts    int
	Found       int
	Unreachable int
	Mismatches  int
}

func main() {
	cmd := &cli.Command{
		Name:  "bruteforcer",
		Usage: "Cross-check server searches on random wall layouts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Server URL"},
			&cli.StringFlag{Name: "config", Usage: "Preset id (default preset when empty)"},
			&cli.IntFlag{Name: "attempts", Value: 100, Usage: "Number of random layouts"},
			&cli.FloatFlag{Name: "density", Value: 0.3, Usage: "Share of cells turned into walls"},
			&cli.IntFlag{Name: "seed", Usage: "Random seed (current time when 0)"},
			&cli.DurationFlag{Name: "delay", Usage: "Pause between attempts"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			level := slog.LevelInfo
			if cmd.Bool("v") {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			seed := uint64(cmd.Int("seed"))
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			opts := Options{
				ConfigID: cmd.String("config"),
				Attempts: int(cmd.Int("attempts")),
				Density:  cmd.Float("density"),
				Seed:     seed,
				Delay:    cmd.Duration("delay"),
			}

			logger.Info("connecting", "url", cmd.String("url"), "seed", seed)
			summary, err := run(ctx, NewClient(cmd.String("url")), opts, logger)
			if err != nil {
				return err
			}

			logger.Info("done", "attempts", summary.Attempts, "found", summary.Found,
				"unreachable", summary.Unreachable, "mismatches", summary.Mismatches)
			if summary.Mismatches > 0 {
				return fmt.Errorf("%d of %d searches disagreed with the local replay", summary.Mismatches, summary.Attempts)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("bruteforcer failed", "error", err)
		os.Exit(1)
	}
}

// run creates a session and plays opts.Attempts random layouts against it
func run(ctx context.Context, client *Client, opts Options, logger *slog.Logger) (*Summary, error) {
	info, err := client.CreateSession(ctx, opts.ConfigID)
	if err != nil {
		return nil, err
	}
	if info.LayoutConfig == nil {
		return nil, errors.New("session has no layout configuration")
	}

	layout := info.LayoutConfig
	logger.Info("session created", "id", client.SessionID(), "config", info.ConfigName,
		"width", layout.Width, "height", layout.Height, "start", layout.Start, "target", layout.Target)

	strategy := NewWallStrategy(layout, opts.Seed, opts.Density)
	verifier := NewVerifier(layout)
	summary := &Summary{}

	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if _, err := client.Reset(ctx); err != nil {
			return summary, err
		}

		walls := strategy.Next()
		for _, c := range walls {
			if _, err := client.ToggleWall(ctx, c); err != nil {
				return summary, err
			}
		}

		result, err := client.Search(ctx)
		if err != nil {
			return summary, err
		}

		summary.Attempts++
		switch result.Status {
		case engine.Found:
			summary.Found++
		case engine.Unreachable:
			summary.Unreachable++
		}

		if err := verifier.Check(walls, result); err != nil {
			summary.Mismatches++
			logger.Warn("mismatch", "attempt", attempt, "walls", len(walls), "error", err)
		} else {
			logger.Debug("attempt ok", "attempt", attempt, "walls", len(walls),
				"status", result.Status, "length", result.Length, "explored", result.ExploredCount)
		}

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	return summary, nil
}
