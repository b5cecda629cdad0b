package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/weft-audio/weft/audio"
	"github.com/weft-audio/weft/mini"
	"github.com/weft-audio/weft/sched"
)

var playOpts struct {
	bpm      float64
	ppq      int
	root     float64
	cycle    float64
	velocity float64
}

var playCmd = &cobra.Command{
	Use:   "play <pattern>",
	Short: "Play a pattern through the default audio device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pat, err := mini.Parse(args[0])
		if err != nil {
			return err
		}

		engine, err := audio.NewEngine(playOpts.ppq)
		if err != nil {
			return err
		}
		defer engine.Close()
		engine.SetBPM(playOpts.bpm)

		player := &sched.Player{
			Pattern:  pat,
			Root:     playOpts.root,
			Cycle:    playOpts.cycle,
			Velocity: playOpts.velocity,
		}
		engine.Update(func() {
			engine.Scheduler().Add(player)
			player.Start(0)
		})

		if err := engine.Start(); err != nil {
			return err
		}
		fmt.Println("playing, ctrl-c to stop")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return nil
	},
}

func init() {
	playCmd.Flags().Float64Var(&playOpts.bpm, "bpm", 120, "tempo in beats per minute")
	playCmd.Flags().IntVar(&playOpts.ppq, "ppq", 96, "scheduler ticks per quarter note")
	playCmd.Flags().Float64Var(&playOpts.root, "root", 60, "base MIDI pitch the pattern offsets")
	playCmd.Flags().Float64Var(&playOpts.cycle, "cycle", 4, "cycle width in beats")
	playCmd.Flags().Float64Var(&playOpts.velocity, "velocity", 100, "note velocity 0-127")
	rootCmd.AddCommand(playCmd)
}
