// Package engine drives the tick loop: it is the only package that knows
// about both comm (the process/wire layer) and transit (the per-station
// state machine), and the only place the tick's phase ordering is encoded.
package engine

import (
	"fmt"

	"gopkg.in/inconshreveable/log15.v2"

	"github.com/tracktitans/transitsim/internal/comm"
	"github.com/tracktitans/transitsim/internal/topology"
	"github.com/tracktitans/transitsim/internal/transit"
)

var log = log15.New("pkg", "engine")

// InitializeLogger re-parents the package logger under parent, the way the
// rest of this module's packages do.
func InitializeLogger(parent log15.Logger) {
	log = parent.New("pkg", "engine")
}

// Engine is one rank's view of the simulation: the full (replicated)
// network, the subset of stations it drives, and its communicator handle.
type Engine struct {
	Comm       comm.Communicator
	Topo       *topology.Topology
	Stations   map[int]*transit.Station
	TotalTicks int
	PrintCount int

	owned   []int // station ids this rank drives, ascending
	counter int
	spawned map[topology.Line][2]int
}

// New builds an Engine for one rank. stations is normally the full network
// from BuildNetwork; only the stations this rank owns (topology.Rank(id,
// c.Size()) == c.Rank()) are ever read or mutated, since a station only
// ever receives on its own tag.
func New(c comm.Communicator, topo *topology.Topology, stations map[int]*transit.Station, totalTicks, printCount int) *Engine {
	var owned []int
	for id := 0; id < topo.NumStations(); id++ {
		if topology.Rank(id, c.Size()) == c.Rank() {
			owned = append(owned, id)
		}
	}
	return &Engine{
		Comm:       c,
		Topo:       topo,
		Stations:   stations,
		TotalTicks: totalTicks,
		PrintCount: printCount,
		owned:      owned,
		spawned:    make(map[topology.Line][2]int),
	}
}

// Run executes the full simulation and returns the snapshot lines gathered
// on rank 0 (nil on every other rank). The caller is responsible for
// printing them; the caller owns I/O, not library code.
func (e *Engine) Run() ([]string, error) {
	var out []string
	for tick := 0; tick < e.TotalTicks; tick++ {
		tickVal := tick
		e.Comm.Bcast(&tickVal)

		e.spawn(tick)
		e.Comm.Barrier()

		e.dispatch(tick)
		if err := e.receive(tick); err != nil {
			return nil, fmt.Errorf("tick %d: %w", tick, err)
		}
		e.Comm.Barrier()

		if tick >= e.TotalTicks-e.PrintCount {
			local := e.localSnapshot()
			gathered := e.Comm.GatherStrings(local)
			if e.Comm.Rank() == 0 {
				out = append(out, formatTick(tick, gathered))
			}
		}
	}
	return out, nil
}

// spawn performs the Spawn/Allreduce phase: green, then yellow,
// then blue, a fixed order required so that the single cross-line train-id
// counter advances identically on every rank regardless of which rank owns
// which terminal.
func (e *Engine) spawn(tick int) {
	for _, line := range topology.Lines {
		fwdID, ok := e.Topo.ForwardTerminal[line]
		if !ok {
			continue // line has no stations in this topology; every rank agrees, so skipping stays symmetric
		}
		bwdID := e.Topo.BackwardTerminal[line]
		budget := e.Topo.SpawnBudget[line]
		progress := e.spawned[line]

		size := e.Comm.Size()

		localFwd := 0
		if topology.Rank(fwdID, size) == e.Comm.Rank() && progress[0] < budget[0] {
			localFwd = 1
		}
		fwdSpawned := e.Comm.AllreduceSum(localFwd)
		if localFwd == 1 {
			e.Stations[fwdID].Admit(e.Topo, line, e.counter, transit.Forward, tick)
			progress[0]++
		}

		localBwd := 0
		if topology.Rank(bwdID, size) == e.Comm.Rank() && progress[1] < budget[1] {
			localBwd = 1
		}
		bwdSpawned := e.Comm.AllreduceSum(localBwd)
		if localBwd == 1 {
			e.Stations[bwdID].Admit(e.Topo, line, e.counter+fwdSpawned, transit.Backward, tick)
			progress[1]++
		}

		e.counter += fwdSpawned + bwdSpawned
		e.spawned[line] = progress
	}
}

// dispatch performs the Depart and Promote sub-transitions for every
// platform this rank owns, sending a real message or the sentinel on every
// outgoing edge so the destination rank's Recv count always matches.
func (e *Engine) dispatch(tick int) {
	size := e.Comm.Size()
	for _, id := range e.owned {
		st := e.Stations[id]
		for _, p := range st.OutgoingPlatforms() {
			dstRank := topology.Rank(p.DstID, size)
			if t, ok := p.Depart(tick); ok {
				e.Comm.Send(dstRank, p.DstID, toWireMsg(t))
			} else {
				e.Comm.Send(dstRank, p.DstID, comm.Sentinel)
			}
			if promoted := p.Promote(tick); promoted != nil {
				st.Release(promoted.ID)
			}
		}
	}
}

// receive performs the Receive and Admit-load sub-transitions: drain every
// owned station's inbound messages, admit the real ones, then give each
// outgoing platform a chance to pull its next loader.
func (e *Engine) receive(tick int) error {
	for _, id := range e.owned {
		st := e.Stations[id]
		n := e.Topo.IncomingCount(id)
		for _, msg := range e.Comm.Recv(id, n) {
			if msg.Sentinel {
				continue
			}
			st.Admit(e.Topo, msg.Line, msg.ID, fromWireDirection(msg.Direction), tick)
		}
		for _, p := range st.OutgoingPlatforms() {
			if _, err := p.AdmitLoad(tick); err != nil {
				log.Error("admit-load failed", "station", st.Name, "err", err)
				return err
			}
		}
	}
	return nil
}

func toWireMsg(t *transit.Train) comm.TrainMsg {
	dir := comm.Forward
	if t.Direction == transit.Backward {
		dir = comm.Backward
	}
	return comm.TrainMsg{Line: t.Line, ID: t.ID, Direction: dir}
}

func fromWireDirection(d comm.Direction) transit.Direction {
	if d == comm.Backward {
		return transit.Backward
	}
	return transit.Forward
}
