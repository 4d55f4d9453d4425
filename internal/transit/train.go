// Package transit implements the per-station state machine: holding
// queues, platforms, and the station that owns them. It is deliberately
// unaware of process boundaries or messaging — the engine package drives
// these types and turns their departures into wire messages.
package transit

import "github.com/tracktitans/transitsim/internal/topology"

// Direction is a train's direction of travel along its line.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Status is a train's current activity.
type Status int

const (
	Holding Status = iota
	Loading
	Travelling
)

// Train is the mutable per-train record. Identity is (Line, ID);
// everything else mutates as the train moves through the network.
type Train struct {
	Line        topology.Line
	ID          int
	Direction   Direction
	ArrivalTick int
	Status      Status
}
