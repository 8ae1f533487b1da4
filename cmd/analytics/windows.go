package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-analytics/dsp/spectrum"
)

func newWindowsCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "windows [name ...]",
		Short: "Print spectral properties of the analysis windows",
		RunE: func(_ *cobra.Command, args []string) error {
			windows := spectrum.Windows()
			if len(args) > 0 {
				windows = windows[:0:0]
				for _, name := range args {
					w, err := spectrum.ParseWindow(name)
					if err != nil {
						return err
					}
					windows = append(windows, w)
				}
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tPower Gain\tENBW [bins]\tScallop [dB]\n")
			for _, w := range windows {
				info, err := spectrum.Analyze(w, size)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.6f\t%.4f\t%.4f\n",
					w, info.Size, info.CoherentGain, info.PowerGain, info.ENBW, info.ScallopdB)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&size, "size", "n", 1024, "Window length in samples")
	return cmd
}
