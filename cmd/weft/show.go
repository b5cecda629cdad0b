package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/weft-audio/weft/mini"
	"github.com/weft-audio/weft/pattern"
	"github.com/weft-audio/weft/rat"
)

var showOpts struct {
	cycles int
}

var showCmd = &cobra.Command{
	Use:   "show <pattern>",
	Short: "Print the events a pattern produces, cycle by cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pat, err := mini.Parse(args[0])
		if err != nil {
			return err
		}
		showPattern(os.Stdout, pat, showOpts.cycles)
		return nil
	},
}

func showPattern(w io.Writer, pat pattern.Pattern, cycles int) {
	for c := int64(0); c < int64(cycles); c++ {
		arc := pattern.Arc{Start: rat.FromInt(c), End: rat.FromInt(c + 1)}
		events := pat.Query(arc)
		fmt.Fprintf(w, "cycle %d\n", c)
		if len(events) == 0 {
			fmt.Fprintln(w, "  (silence)")
			continue
		}
		for _, ev := range events {
			onset := " "
			if ev.Onset() {
				onset = "*"
			}
			fmt.Fprintf(w, "  %s %-12s %v\n", onset, ev.Part.String(), ev.Value)
		}
	}
}

func init() {
	showCmd.Flags().IntVar(&showOpts.cycles, "cycles", 1, "number of cycles to show")
	rootCmd.AddCommand(showCmd)
}
