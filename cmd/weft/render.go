package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/weft-audio/weft/audio"
	"github.com/weft-audio/weft/mini"
	"github.com/weft-audio/weft/sched"
)

var renderOpts struct {
	out      string
	cycles   int
	bpm      float64
	ppq      int
	root     float64
	cycle    float64
	velocity float64
}

var renderCmd = &cobra.Command{
	Use:   "render <pattern>",
	Short: "Render a pattern to a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pat, err := mini.Parse(args[0])
		if err != nil {
			return err
		}

		sink := &sched.Collector{}
		s := sched.New(renderOpts.ppq, sink)
		player := &sched.Player{
			Pattern:  pat,
			Root:     renderOpts.root,
			Cycle:    renderOpts.cycle,
			Velocity: renderOpts.velocity,
		}
		s.Add(player)
		player.Start(0)

		ticks := int(math.Round(float64(renderOpts.cycles) * renderOpts.cycle * float64(renderOpts.ppq)))
		sink.Run(s, ticks)

		buf := audio.Render(sink.Notes, renderOpts.bpm, renderOpts.ppq, ticks)
		f, err := os.Create(renderOpts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := audio.WriteWAV(f, buf); err != nil {
			return err
		}
		fmt.Printf("wrote %d notes over %d cycles to %s\n", len(sink.Notes), renderOpts.cycles, renderOpts.out)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.out, "out", "o", "out.wav", "output file")
	renderCmd.Flags().IntVar(&renderOpts.cycles, "cycles", 4, "number of cycles to render")
	renderCmd.Flags().Float64Var(&renderOpts.bpm, "bpm", 120, "tempo in beats per minute")
	renderCmd.Flags().IntVar(&renderOpts.ppq, "ppq", 96, "scheduler ticks per quarter note")
	renderCmd.Flags().Float64Var(&renderOpts.root, "root", 60, "base MIDI pitch the pattern offsets")
	renderCmd.Flags().Float64Var(&renderOpts.cycle, "cycle", 4, "cycle width in beats")
	renderCmd.Flags().Float64Var(&renderOpts.velocity, "velocity", 100, "note velocity 0-127")
	rootCmd.AddCommand(renderCmd)
}
