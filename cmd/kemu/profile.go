package main

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/kemu/internal/gameboy"
	"github.com/thelolagemann/kemu/internal/profile"
	"gonum.org/v1/plot/vg"
)

func (a *app) profileCmd() *cobra.Command {
	var (
		flags    machineFlags
		top      int
		plotPath string
	)

	cmd := &cobra.Command{
		Use:   "profile [rom]",
		Short: "Run a program and report the instructions it executed most",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, args, a.cfg); err != nil {
				return usage(err)
			}

			p := profile.New()
			g, err := a.newGameBoy(nil, gameboy.Debug(), gameboy.WithTracer(p))
			if err != nil {
				return usage(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			_, runErr := g.Start(ctx)

			if err := p.Report(cmd.OutOrStdout(), top); err != nil {
				return err
			}
			if plotPath != "" {
				switch err := writePlot(p, plotPath, top); {
				case errors.Is(err, profile.ErrEmpty):
					a.log.Warnf("nothing executed, not plotting")
				case err != nil:
					return err
				default:
					a.log.Infof("instruction mix plotted to %s", plotPath)
				}
			}
			return runErr
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&top, "top", 20, "Number of instructions to report (0 = all)")
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write a bar chart of the report to this PNG file")
	return cmd
}

func writePlot(p *profile.Profile, path string, top int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := p.WritePNG(f, top, 8*vg.Inch, 5*vg.Inch); err != nil {
		return err
	}
	return f.Close()
}
