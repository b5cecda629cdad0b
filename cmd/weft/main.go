package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "Cyclic pattern sequencer",
	Long: `weft parses mini-notation patterns ("0 3 5 7", "<0 [3 5]>*2") and
schedules them as notes: live through the default audio device, offline to a
WAV file, or exported as a standard MIDI file.`,
	SilenceUsage: true,
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
