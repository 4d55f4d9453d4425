// Copyright (C) 2008-2018 by Nicolas Piganeau and the TS2 TEAM
// (See AUTHORS file)
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program; if not, write to the
// Free Software Foundation, Inc.,
// 59 Temple Place - Suite 330, Boston, MA  02111-1307, USA.

package liveview

// KPISnapshot is the set of rolling indicators published alongside each
// tick's snapshot tokens. Unlike a real-time system's windowed KPIs, these
// are simple per-tick counts plus a cumulative average: the simulation has
// no wall clock to window against.
type KPISnapshot struct {
	Holding          int     `json:"holding"`
	Loading          int     `json:"loading"`
	Travelling       int     `json:"travelling"`
	DepartedThisTick int     `json:"departedThisTick"`
	AverageQueueDepth float64 `json:"averageQueueDepth"`
}

// Counter accumulates the running totals KPISnapshot.AverageQueueDepth is
// derived from. One Counter lives for the whole run; Observe is called once
// per tick with that tick's queue-depth samples, and each returned
// AverageQueueDepth is the mean over every sample seen so far, not just the
// samples from that one tick.
type Counter struct {
	sampleCount int
	queueTotal  int
}

// Observe folds one tick's per-platform queue depths into the running
// totals and returns the KPISnapshot for that tick, whose AverageQueueDepth
// is the cumulative mean queue depth across every tick observed so far.
func (c *Counter) Observe(holding, loading, travelling, departed int, queueDepths []int) KPISnapshot {
	sum := 0
	for _, d := range queueDepths {
		sum += d
	}
	c.sampleCount += len(queueDepths)
	c.queueTotal += sum

	avg := 0.0
	if c.sampleCount > 0 {
		avg = float64(c.queueTotal) / float64(c.sampleCount)
	}
	return KPISnapshot{
		Holding:           holding,
		Loading:           loading,
		Travelling:        travelling,
		DepartedThisTick:  departed,
		AverageQueueDepth: avg,
	}
}
