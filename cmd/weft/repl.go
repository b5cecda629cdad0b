package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/weft-audio/weft/audio"
	"github.com/weft-audio/weft/mini"
	"github.com/weft-audio/weft/sched"
)

var replOpts struct {
	bpm float64
	ppq int
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Live-edit a pattern at an interactive prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := audio.NewEngine(replOpts.ppq)
		if err != nil {
			return err
		}
		defer engine.Close()
		engine.SetBPM(replOpts.bpm)
		if err := engine.Start(); err != nil {
			return err
		}
		return repl(engine)
	},
}

// replState holds the live parameters. They're read by the scheduler through
// closures once per tick, so edits only ever take effect on a tick boundary.
type replState struct {
	engine *audio.Engine
	player *sched.Player
	handle uuid.UUID

	root     float64
	cycle    float64
	velocity float64
}

func repl(engine *audio.Engine) error {
	rl, err := readline.New("weft> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	st := &replState{engine: engine, root: 60, cycle: 4, velocity: 100}

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit, err := st.eval(line); quit {
			return nil
		} else if err != nil {
			fmt.Println(err)
		}
	}
}

func (st *replState) eval(line string) (quit bool, err error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "play":
		return false, st.play(rest)
	case "stop":
		st.engine.Update(func() {
			if st.player != nil {
				st.player.Stop()
			}
		})
		return false, nil
	case "bpm":
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return false, fmt.Errorf("bpm: %w", err)
		}
		st.engine.SetBPM(v)
		return false, nil
	case "root", "cycle", "vel":
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
		st.engine.Update(func() {
			switch name {
			case "root":
				st.root = v
			case "cycle":
				st.cycle = v
			case "vel":
				st.velocity = v
			}
		})
		return false, nil
	case "show":
		pat, err := mini.Parse(rest)
		if err != nil {
			return false, err
		}
		showPattern(os.Stdout, pat, 1)
		return false, nil
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command: %s", name)
	}
}

func (st *replState) play(input string) error {
	pat, err := mini.Parse(input)
	if err != nil {
		return err
	}
	player := &sched.Player{
		Pattern:  pat,
		Root:     func() float64 { return st.root },
		Cycle:    func() float64 { return st.cycle },
		Velocity: func() float64 { return st.velocity },
	}
	now := st.engine.Now()
	st.engine.Update(func() {
		if st.player != nil {
			st.player.Stop()
			st.engine.Scheduler().Remove(st.handle)
		}
		st.handle = st.engine.Scheduler().Add(player)
		player.Start(now)
		st.player = player
	})
	return nil
}

func init() {
	replCmd.Flags().Float64Var(&replOpts.bpm, "bpm", 120, "tempo in beats per minute")
	replCmd.Flags().IntVar(&replOpts.ppq, "ppq", 96, "scheduler ticks per quarter note")
	rootCmd.AddCommand(replCmd)
}
