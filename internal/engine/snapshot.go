package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tracktitans/transitsim/internal/transit"
)

// token renders one train's contribution to a snapshot line:
// "g0-A#" (holding), "g0-A%" (loading), "g0-A->B" (travelling A to B).
func token(t *transit.Train, stationName string, suffix string) string {
	return fmt.Sprintf("%c%d-%s%s", t.Line.Code(), t.ID, stationName, suffix)
}

// localSnapshot builds every token contributed by the stations this rank
// owns. TrainsInCharge is read directly so each holding/loading train is
// counted exactly once per station regardless of which platform's queue it
// sits in; travelling trains are read off the platform they departed from,
// since Promote already moved them out of TrainsInCharge the tick they left.
func (e *Engine) localSnapshot() []string {
	var tokens []string
	for _, id := range e.owned {
		st := e.Stations[id]
		for _, t := range st.TrainsInCharge {
			suffix := "#"
			if t.Status == transit.Loading {
				suffix = "%"
			}
			tokens = append(tokens, token(t, st.Name, suffix))
		}
		for _, p := range st.OutgoingPlatforms() {
			if p.TravellingTrain != nil {
				tokens = append(tokens, token(p.TravellingTrain, p.SrcName, "->"+p.DstName))
			}
		}
	}
	return tokens
}

// formatTick renders one complete snapshot line: "{tick}: {token} {token}…",
// tokens in lexicographic order so the output is independent of
// gather arrival order and therefore of process count.
func formatTick(tick int, tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	return fmt.Sprintf("%d: %s", tick, strings.Join(sorted, " "))
}
