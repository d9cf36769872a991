package model

// CleanupStats summarizes one reaper sweep.
type CleanupStats struct {
	OrdersCancelled int
	TicketsReleased int
	GAUnitsReleased int
}

// Add merges another sweep's counters into s.
func (s *CleanupStats) Add(other CleanupStats) {
	s.OrdersCancelled += other.OrdersCancelled
	s.TicketsReleased += other.TicketsReleased
	s.GAUnitsReleased += other.GAUnitsReleased
}
