package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/kemu/internal/gameboy"
	"github.com/thelolagemann/kemu/pkg/emu"
	"github.com/thelolagemann/kemu/pkg/web"
)

func (a *app) runCmd() *cobra.Command {
	var (
		flags     machineFlags
		serial    bool
		traceAddr string
		saveState string
		saveDir   string
	)

	cmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Run a program until it halts, stops or faults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, args, a.cfg); err != nil {
				return usage(err)
			}
			if cmd.Flags().Changed("serial") {
				a.cfg.Serial = serial
			}
			if cmd.Flags().Changed("trace-addr") {
				a.cfg.TraceAddr = traceAddr
			}
			if cmd.Flags().Changed("save-state") {
				a.cfg.StateOut = saveState
			}
			if cmd.Flags().Changed("save-dir") {
				a.cfg.SaveDir = saveDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var extra []gameboy.Opt
			if a.cfg.TraceAddr != "" {
				hub := web.NewHub(a.log)
				go func() {
					if err := web.Serve(ctx, a.cfg.TraceAddr, hub); err != nil {
						a.log.Errorf("web: %v", err)
					}
				}()
				// the hub needs every instruction traced, the log only
				// shows them with --verbose
				extra = append(extra, gameboy.Debug(), gameboy.WithTracer(hub))
			}

			g, err := a.newGameBoy(cmd.OutOrStdout(), extra...)
			if err != nil {
				return usage(err)
			}

			status, runErr := g.Start(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "%s after %d steps (%d cycles)\n%s\n", status, g.CPU.Steps, g.CPU.Cycles, g.CPU.Snapshot())

			if a.cfg.StateOut != "" {
				if err := writeState(g, a.cfg.StateOut); err != nil {
					a.log.Errorf("%v", err)
				} else {
					a.log.Infof("save state written to %s", a.cfg.StateOut)
				}
			}
			if a.cfg.SaveDir != "" {
				if save, err := storeState(g, a.cfg.SaveDir); err != nil {
					a.log.Errorf("%v", err)
				} else {
					a.log.Infof("save state written to %s", save.Path)
				}
			}
			return runErr
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&serial, "serial", false, "Print bytes sent over the serial port")
	cmd.Flags().StringVar(&traceAddr, "trace-addr", "", "Stream the trace over websocket on this address, e.g. localhost:8090")
	cmd.Flags().StringVar(&saveState, "save-state", "", "Write a save state here once execution ends")
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Keep save states of every run in this folder")
	cmd.Flags().BoolVar(&a.resume, "resume", false, "Resume from the newest save state in the save folder")
	return cmd
}

func storeState(g *gameboy.GameBoy, dir string) (*emu.Save, error) {
	state, err := g.SaveState()
	if err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}
	return emu.NewStore(dir).Write(g.Cart.Hash(), state)
}

func writeState(g *gameboy.GameBoy, path string) error {
	state, err := g.SaveState()
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return os.WriteFile(path, state, 0o644)
}
