package transit

import "github.com/tracktitans/transitsim/internal/oracle"

// Platform is the outgoing-edge endpoint at a station: it
// owns one holding queue, at most one loading train, and at most one
// travelling train. Two lines that cross the same src->dst edge in either
// direction share the same Platform and therefore the same holding queue.
type Platform struct {
	SrcID, DstID     int
	SrcName, DstName string
	Distance         int

	Oracle oracle.LoadTimeGen

	Queue *HoldingQueue

	LoadingTrain    *Train
	TravellingTrain *Train
	LoadDeadline    int
	TravelDeadline  int
}

// NewPlatform constructs an idle platform for the src->dst edge.
func NewPlatform(srcID, dstID int, srcName, dstName string, distance int, gen oracle.LoadTimeGen) *Platform {
	return &Platform{
		SrcID:    srcID,
		DstID:    dstID,
		SrcName:  srcName,
		DstName:  dstName,
		Distance: distance,
		Oracle:   gen,
		Queue:    NewHoldingQueue(),
	}
}

// IsLoading reports whether the platform currently has a boarding train.
func (p *Platform) IsLoading() bool { return p.LoadingTrain != nil }

// IsTravelling reports whether the platform currently has a train in transit.
func (p *Platform) IsTravelling() bool { return p.TravellingTrain != nil }

// Depart performs the Depart transition. If the
// travelling train's travel_deadline has arrived, it is cleared from the
// platform and returned (the caller is responsible for turning it into a
// wire message) and ok is true. Otherwise ok is false and the
// caller must still send the sentinel payload for this tick.
func (p *Platform) Depart(tick int) (t *Train, ok bool) {
	if p.TravellingTrain == nil || tick < p.TravelDeadline {
		return nil, false
	}
	t = p.TravellingTrain
	p.TravellingTrain = nil
	return t, true
}

// Promote performs the Promote transition: if the
// platform is not travelling and its loader's deadline has arrived, the
// loader becomes the travelling train. Returns the train that was promoted,
// or nil if nothing was promoted.
func (p *Platform) Promote(tick int) *Train {
	if p.TravellingTrain != nil || p.LoadingTrain == nil || tick < p.LoadDeadline {
		return nil
	}
	t := p.LoadingTrain
	p.LoadingTrain = nil
	p.TravellingTrain = t
	p.TravelDeadline = tick + p.Distance
	t.Status = Travelling
	return t
}

// AdmitLoad performs the Admit-load transition. A train
// is only eligible once it has spent at least one full tick in holding
// (ArrivalTick < tick); this is the concrete rule that reproduces the
// arrival/load/travel cadence of scenarios S1-S6 — see DESIGN.md.
// Returns the admitted train, or nil if nothing was admitted.
func (p *Platform) AdmitLoad(tick int) (*Train, error) {
	if p.LoadingTrain != nil {
		return nil, nil
	}
	top := p.Queue.Peek()
	if top == nil || top.ArrivalTick >= tick {
		return nil, nil
	}
	t := p.Queue.Pop()
	wait, err := p.Oracle.Next(t.ID)
	if err != nil {
		p.Queue.Push(t)
		return nil, err
	}
	t.Status = Loading
	p.LoadingTrain = t
	p.LoadDeadline = tick + wait
	return t, nil
}
