package engine

import (
	"github.com/tracktitans/transitsim/internal/oracle"
	"github.com/tracktitans/transitsim/internal/topology"
	"github.com/tracktitans/transitsim/internal/transit"
)

// LoadTimeGenFor builds the load-time oracle a freshly-created platform
// should use, given the id of the station it departs from. Production code
// passes DefaultLoadTimeGen; tests pass a constant-wait generator so that
// scenario output is reproducible.
type LoadTimeGenFor func(srcStationID int) oracle.LoadTimeGen

// DefaultLoadTimeGen seeds each platform's oracle from the popularity of the
// station passengers board at.
func DefaultLoadTimeGen(topo *topology.Topology) LoadTimeGenFor {
	return func(srcStationID int) oracle.LoadTimeGen {
		return oracle.NewPopularityGen(topo.Popularities[srcStationID])
	}
}

// BuildNetwork constructs every station and platform the topology describes.
// Each rank calls this independently and drives only the subset of stations
// it owns; the unowned stations in its copy are simply never
// touched, which keeps every rank's in-memory state private with no shared
// mutable objects across rank goroutines.
func BuildNetwork(topo *topology.Topology, genFor LoadTimeGenFor) map[int]*transit.Station {
	stations := make(map[int]*transit.Station, topo.NumStations())
	for id := 0; id < topo.NumStations(); id++ {
		stations[id] = transit.NewStation(id, topo.StationNames[id], topo.Popularities[id])
	}

	for _, line := range topology.Lines {
		seq := topo.StationLines[line]
		if len(seq) < 2 {
			continue
		}
		ids := make([]int, len(seq))
		for i, name := range seq {
			id, _ := topo.StationID(name)
			ids[i] = id
		}

		for i := 0; i < len(ids)-1; i++ {
			src, dst := ids[i], ids[i+1]
			p := stations[src].AddPlatform(dst, func() *transit.Platform {
				return transit.NewPlatform(src, dst, topo.StationNames[src], topo.StationNames[dst], topo.Distance(src, dst), genFor(src))
			})
			stations[src].LinkForward(line, p)
		}
		for i := len(ids) - 1; i >= 1; i-- {
			src, dst := ids[i], ids[i-1]
			p := stations[src].AddPlatform(dst, func() *transit.Platform {
				return transit.NewPlatform(src, dst, topo.StationNames[src], topo.StationNames[dst], topo.Distance(src, dst), genFor(src))
			})
			stations[src].LinkBackward(line, p)
		}
	}

	return stations
}
