package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kapitanov/chip8/internal/hal"
	"github.com/kapitanov/chip8/internal/vm"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:           fmt.Sprintf("%s PATH_TO_ROM_FILE", filepath.Base(os.Args[0])),
		Short:         "Run a CHIP-8 program",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	verbose := cmd.Flags().BoolP("verbose", "v", false, "enable verbose logging")
	seed := cmd.Flags().Uint64("seed", 0, "seed for the random number generator (0 picks one from the clock)")

	cmd.RunE = func(_ *cobra.Command, args []string) error {
		loggerOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		if *verbose {
			loggerOpts.Level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, loggerOpts)))

		path := args[0]
		bs, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to load file %q: %w", path, err)
		}

		if len(bs) > vm.MaxProgramSize {
			return fmt.Errorf("unable to load file %q: %d bytes: %w", path, len(bs), vm.ErrProgramTooLarge)
		}

		h, err := hal.New(fmt.Sprintf("CHIP-8 - %s", filepath.Base(path)))
		if err != nil {
			return fmt.Errorf("unable to initialize hal: %w", err)
		}
		defer h.Shutdown()

		machine := vm.New(vm.WithRand(vm.NewRand(*seed)))

		for {
			err = machine.Run(h, bs)

			if errors.Is(err, hal.ErrQuit) {
				return nil
			}

			if errors.Is(err, hal.ErrReboot) {
				slog.Info("reboot")
				continue
			}

			return err
		}
	}

	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		slog.Error("fatal error", "err", err)
		os.Exit(1)
	}
}
