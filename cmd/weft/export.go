package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"

	"github.com/weft-audio/weft/mini"
	"github.com/weft-audio/weft/sched"
)

var exportOpts struct {
	out      string
	cycles   int
	bpm      float64
	ppq      int
	root     float64
	cycle    float64
	velocity float64
}

var exportCmd = &cobra.Command{
	Use:   "export <pattern>",
	Short: "Export a pattern as a standard MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pat, err := mini.Parse(args[0])
		if err != nil {
			return err
		}

		sink := &sched.Collector{}
		s := sched.New(exportOpts.ppq, sink)
		player := &sched.Player{
			Pattern:  pat,
			Root:     exportOpts.root,
			Cycle:    exportOpts.cycle,
			Velocity: exportOpts.velocity,
		}
		s.Add(player)
		player.Start(0)

		ticks := int(math.Round(float64(exportOpts.cycles) * exportOpts.cycle * float64(exportOpts.ppq)))
		sink.Run(s, ticks)

		if err := writeSMF(exportOpts.out, sink.Notes); err != nil {
			return err
		}
		fmt.Printf("wrote %d notes to %s\n", len(sink.Notes), exportOpts.out)
		return nil
	},
}

type midiEvent struct {
	tick int
	msg  midi.Message
}

func writeSMF(path string, notes []sched.TimedNote) error {
	var events []midiEvent
	for _, n := range notes {
		key := uint8(n.Note.Pitch)
		vel := uint8(math.Round(n.Note.Velocity * 127))
		events = append(events, midiEvent{tick: n.Tick, msg: midi.NoteOn(0, key, vel)})
		events = append(events, midiEvent{tick: n.Tick + n.Note.Duration, msg: midi.NoteOff(0, key)})
	}
	slices.SortStableFunc(events, func(a, b midiEvent) bool {
		return a.tick < b.tick
	})

	out := smf.New()
	out.TimeFormat = smf.MetricTicks(exportOpts.ppq)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(exportOpts.bpm))
	last := 0
	for _, ev := range events {
		tr.Add(uint32(ev.tick-last), ev.msg)
		last = ev.tick
	}
	tr.Close(0)
	out.Add(tr)
	return out.WriteFile(path)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "out.mid", "output file")
	exportCmd.Flags().IntVar(&exportOpts.cycles, "cycles", 4, "number of cycles to export")
	exportCmd.Flags().Float64Var(&exportOpts.bpm, "bpm", 120, "tempo in beats per minute")
	exportCmd.Flags().IntVar(&exportOpts.ppq, "ppq", 96, "MIDI file resolution in ticks per quarter note")
	exportCmd.Flags().Float64Var(&exportOpts.root, "root", 60, "base MIDI pitch the pattern offsets")
	exportCmd.Flags().Float64Var(&exportOpts.cycle, "cycle", 4, "cycle width in beats")
	exportCmd.Flags().Float64Var(&exportOpts.velocity, "velocity", 100, "note velocity 0-127")
	rootCmd.AddCommand(exportCmd)
}
