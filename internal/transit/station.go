package transit

import "github.com/tracktitans/transitsim/internal/topology"

// Station owns its outgoing platforms and the trains currently holding or
// loading at any of them.
type Station struct {
	ID         int
	Name       string
	Popularity int

	platforms map[int]*Platform // keyed by destination station id
	order     []int             // destination ids, first-created order

	forwardLink  map[topology.Line]*Platform
	backwardLink map[topology.Line]*Platform

	TrainsInCharge map[int]*Train
}

// NewStation constructs an empty station. Platforms and line links are
// attached afterwards by engine.BuildNetwork via AddPlatform/LinkForward/
// LinkBackward.
func NewStation(id int, name string, popularity int) *Station {
	return &Station{
		ID:             id,
		Name:           name,
		Popularity:     popularity,
		platforms:      make(map[int]*Platform),
		forwardLink:    make(map[topology.Line]*Platform),
		backwardLink:   make(map[topology.Line]*Platform),
		TrainsInCharge: make(map[int]*Train),
	}
}

// AddPlatform registers the outgoing platform to dstID if one does not
// already exist for that destination, and returns the (possibly
// pre-existing) platform — this is how two lines sharing an edge end up
// sharing one platform and one holding queue.
func (s *Station) AddPlatform(dstID int, newPlatform func() *Platform) *Platform {
	if p, ok := s.platforms[dstID]; ok {
		return p
	}
	p := newPlatform()
	s.platforms[dstID] = p
	s.order = append(s.order, dstID)
	return p
}

// LinkForward records that, for line, trains moving forward out of this
// station should use platform p.
func (s *Station) LinkForward(line topology.Line, p *Platform) { s.forwardLink[line] = p }

// LinkBackward records that, for line, trains moving backward out of this
// station should use platform p.
func (s *Station) LinkBackward(line topology.Line, p *Platform) { s.backwardLink[line] = p }

// OutgoingPlatforms returns the station's platforms in insertion order
//; this order is what matching sends to receives relies on.
func (s *Station) OutgoingPlatforms() []*Platform {
	out := make([]*Platform, len(s.order))
	for i, dst := range s.order {
		out[i] = s.platforms[dst]
	}
	return out
}

// PlatformTo returns the platform serving the src->dst edge, if any.
func (s *Station) PlatformTo(dstID int) (*Platform, bool) {
	p, ok := s.platforms[dstID]
	return p, ok
}

func (s *Station) linkFor(line topology.Line, dir Direction) *Platform {
	if dir == Forward {
		return s.forwardLink[line]
	}
	return s.backwardLink[line]
}

// Spawn creates a new train at this station and pushes it into the
// appropriate holding queue.
func (s *Station) Spawn(line topology.Line, id int, dir Direction, tick int) *Train {
	t := &Train{Line: line, ID: id, Direction: dir, ArrivalTick: tick, Status: Holding}
	s.TrainsInCharge[id] = t
	s.linkFor(line, dir).Queue.Push(t)
	return t
}

// Admit is Spawn plus the turn-around rule: a train arriving at
// a terminal in the direction that would carry it off the line reverses.
func (s *Station) Admit(topo *topology.Topology, line topology.Line, id int, dir Direction, tick int) *Train {
	if dir == Backward && topo.IsForwardTerminal(line, s.ID) {
		dir = Forward
	} else if dir == Forward && topo.IsBackwardTerminal(line, s.ID) {
		dir = Backward
	}
	return s.Spawn(line, id, dir, tick)
}

// Release removes a train from this station's bookkeeping. Called the
// moment a platform's Promote transition turns a loader into a travelling
// train: from that tick on the train belongs to the link, not the station,
// so it must stop appearing in TrainsInCharge even though the actual
// Depart/send may happen on a later tick.
func (s *Station) Release(id int) { delete(s.TrainsInCharge, id) }
