package engine

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tracktitans/transitsim/internal/comm"
	"github.com/tracktitans/transitsim/internal/oracle"
	"github.com/tracktitans/transitsim/internal/topology"
)

// twoStationTopology builds the A<->B green-line network with distance 2
// and two trains, one budgeted to each terminal.
func twoStationTopology(t *testing.T) *topology.Topology {
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
	return topo
}

func constantWaitGen(int) oracle.LoadTimeGen { return oracle.ConstantGen{Wait: 1} }

func runScenario(t *testing.T, processCount int) []string {
	t.Helper()
	topo := twoStationTopology(t)
	comms := comm.NewLocalGroup(processCount)

	results := make([][]string, processCount)
	errs := make([]error, processCount)
	done := make(chan int, processCount)
	for rank := 0; rank < processCount; rank++ {
		rank := rank
		go func() {
			stations := BuildNetwork(topo, constantWaitGen)
			eng := New(comms[rank], topo, stations, 6, 6)
			results[rank], errs[rank] = eng.Run()
			done <- rank
		}()
	}
	for i := 0; i < processCount; i++ {
		<-done
	}
	for _, err := range errs {
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	return results[0]
}

func TestTwoStationTurnaroundScenario(t *testing.T) {
	Convey("Given two stations A<->B on the green line with distance 2 and two trains", t, func() {
		Convey("a single-process run reproduces the expected tick-by-tick snapshot", func() {
			lines := runScenario(t, 1)
			So(strings.Join(lines, "\n"), ShouldEqual, strings.Join([]string{
				"0: g0-A# g1-B#",
				"1: g0-A% g1-B%",
				"2: g0-A->B g1-B->A",
				"3: g0-A->B g1-B->A",
				"4: g0-B# g1-A#",
				"5: g0-B% g1-A%",
			}, "\n"))
		})

		Convey("splitting the two stations across two ranks gives the identical snapshot", func() {
			lines := runScenario(t, 2)
			So(strings.Join(lines, "\n"), ShouldEqual, strings.Join([]string{
				"0: g0-A# g1-B#",
				"1: g0-A% g1-B%",
				"2: g0-A->B g1-B->A",
				"3: g0-A->B g1-B->A",
				"4: g0-B# g1-A#",
				"5: g0-B% g1-A%",
			}, "\n"))
		})
	})
}
