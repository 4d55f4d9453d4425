// Package oracle defines the load-time generator contract used by platforms
// to decide how long a boarding train occupies a platform.
//
// The generator itself is an external collaborator: the engine
// never assumes anything about its distribution, only that it returns a
// positive tick count for a given train id.
package oracle

import "fmt"

// LoadTimeGen returns the next load duration, in ticks, for a train
// boarding at the platform the generator is bound to. Implementations must
// be deterministic for a fixed sequence of train ids, since the engine
// relies on identical oracle output across every participating rank.
type LoadTimeGen interface {
	Next(trainID int) (int, error)
}

// NonPositiveWaitError is returned when a LoadTimeGen violates its contract.
type NonPositiveWaitError struct {
	TrainID int
	Got     int
}

func (e *NonPositiveWaitError) Error() string {
	return fmt.Sprintf("load time oracle returned non-positive wait %d for train %d", e.Got, e.TrainID)
}

// PopularityGen is the reference oracle: a platform's owning station has an
// integer popularity, and the generator produces a small deterministic
// sequence seeded by popularity and train id. It has no relation to any
// real-world demand model; it exists purely so the engine has a concrete,
// reproducible default when no bespoke generator is supplied.
type PopularityGen struct {
	Popularity int
}

// NewPopularityGen binds a load-time generator to a station's popularity.
// It is deterministic across runs for the same inputs.
func NewPopularityGen(popularity int) *PopularityGen {
	return &PopularityGen{Popularity: popularity}
}

// Next implements LoadTimeGen. The formula is intentionally simple and
// purely a function of (popularity, trainID): the wait is
// 1 + (popularity+trainID) mod 3, so it cycles through 1, 2, 3 and tests
// can predict it by hand.
func (g *PopularityGen) Next(trainID int) (int, error) {
	wait := 1 + (g.Popularity+trainID)%3
	if wait <= 0 {
		return 0, &NonPositiveWaitError{TrainID: trainID, Got: wait}
	}
	return wait, nil
}

// ConstantGen always returns the same wait time; it is mainly useful for
// tests that need to hand-compute expected tick-by-tick output.
type ConstantGen struct {
	Wait int
}

// Next implements LoadTimeGen.
func (g ConstantGen) Next(trainID int) (int, error) {
	if g.Wait <= 0 {
		return 0, &NonPositiveWaitError{TrainID: trainID, Got: g.Wait}
	}
	return g.Wait, nil
}
