package transit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tracktitans/transitsim/internal/oracle"
	"github.com/tracktitans/transitsim/internal/topology"
)

func lineTopo(t *testing.T) (*topology.Topology, int, int) {
	t.Helper()
	topo, err := topology.Build(topology.Input{
		StationNames: []string{"A", "B"},
		Popularities: []int{1, 1},
		Adjacency:    [][]int{{0, 2}, {2, 0}},
		StationLines: map[topology.Line][]string{topology.Green: {"A", "B"}},
		NumTrains:    map[topology.Line]int{topology.Green: 2},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a, _ := topo.StationID("A")
	b, _ := topo.StationID("B")
	return topo, a, b
}

func TestStationAdmitTurnsAroundAtTerminal(t *testing.T) {
	Convey("Given a two-station line A<->B", t, func() {
		topo, a, b := lineTopo(t)

		stA := NewStation(a, "A", 1)
		stB := NewStation(b, "B", 1)
		gen := oracle.ConstantGen{Wait: 1}
		pAB := stA.AddPlatform(b, func() *Platform { return NewPlatform(a, b, "A", "B", 2, gen) })
		stA.LinkForward(topology.Green, pAB)
		pBA := stB.AddPlatform(a, func() *Platform { return NewPlatform(b, a, "B", "A", 2, gen) })
		stB.LinkBackward(topology.Green, pBA)

		Convey("a train admitted backward at the forward terminal flips to forward", func() {
			train := stA.Admit(topo, topology.Green, 0, Backward, 0)
			So(train.Direction, ShouldEqual, Forward)
			So(pAB.Queue.Len(), ShouldEqual, 1)
		})

		Convey("a train admitted forward at the backward terminal flips to backward", func() {
			train := stB.Admit(topo, topology.Green, 0, Forward, 0)
			So(train.Direction, ShouldEqual, Backward)
			So(pBA.Queue.Len(), ShouldEqual, 1)
		})

		Convey("Release removes a train from TrainsInCharge", func() {
			stA.Spawn(topology.Green, 0, Forward, 0)
			So(stA.TrainsInCharge, ShouldContainKey, 0)
			stA.Release(0)
			So(stA.TrainsInCharge, ShouldNotContainKey, 0)
		})
	})
}
