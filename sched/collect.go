package sched

// Collector is a Sink that records every trigger along with the tick it
// fired on. Offline drivers set Now before each Tick call; the scheduler
// itself never reads it.
type Collector struct {
	Now   int
	Notes []TimedNote
}

type TimedNote struct {
	Tick int
	Note Note
}

func (c *Collector) Trigger(n Note) {
	c.Notes = append(c.Notes, TimedNote{Tick: c.Now, Note: n})
}

// Run plays the scheduler for ticks ticks starting at zero, collecting all
// triggers.
func (c *Collector) Run(s *Scheduler, ticks int) {
	for t := 0; t < ticks; t++ {
		c.Now = t
		s.Tick(t)
	}
}
