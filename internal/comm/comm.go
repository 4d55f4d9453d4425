// Package comm implements the MPI-style verbs the tick engine is built
// around: Bcast, AllreduceSum, point-to-point Send/Recv,
// Barrier, and GatherStrings. Every verb is collective except Send/Recv:
// every rank must call Bcast/AllreduceSum/Barrier/GatherStrings the same
// number of times, in the same order, every tick, or the group deadlocks —
// exactly as a real MPI program would.
//
// The corpus contains no Go MPI binding (none exists in wide use), so the
// idiomatic Go substitute is goroutines standing in for ranks and channels
// standing in for the wire: see local.go.
package comm

import "github.com/tracktitans/transitsim/internal/topology"

// Direction mirrors transit.Direction without importing the transit
// package, so comm has no dependency on station/platform internals — it
// only ever carries (line, id, direction) triples over the wire.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// TrainMsg is the wire payload a platform's Depart transition produces:
// either a real train descriptor or the sentinel that keeps the receiver's
// per-tag receive count matched to the sender's send count.
type TrainMsg struct {
	Line      topology.Line
	ID        int
	Direction Direction
	Sentinel  bool
}

// Sentinel is the empty "no train departed this edge this tick" payload.
var Sentinel = TrainMsg{Sentinel: true}

// Communicator is the per-rank handle onto a group of collaborating
// processes (here: goroutines). Rank/Size never change after construction.
type Communicator interface {
	Rank() int
	Size() int

	// Bcast copies rank 0's *v to every rank's *v. Collective.
	Bcast(v *int)

	// AllreduceSum sums v across every rank and returns the total to every
	// rank. Collective.
	AllreduceSum(v int) int

	// Send posts msg to dstRank tagged with tag (the destination station's
	// id). Non-blocking: it returns once the message is queued, with no
	// request handle to wait on later.
	Send(dstRank, tag int, msg TrainMsg)

	// Recv blocks until exactly n messages tagged tag have arrived from any
	// source, and returns them in arrival order.
	Recv(tag int, n int) []TrainMsg

	// Barrier blocks until every rank in the group has called Barrier for
	// this round. Collective.
	Barrier()

	// GatherStrings collects every rank's local slice into one slice and
	// returns it on rank 0; every other rank gets nil. Collective.
	GatherStrings(local []string) []string
}
