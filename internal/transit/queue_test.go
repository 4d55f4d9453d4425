package transit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHoldingQueueOrdering(t *testing.T) {
	Convey("Given a holding queue fed trains out of order", t, func() {
		q := NewHoldingQueue()
		q.Push(&Train{ID: 5, ArrivalTick: 2})
		q.Push(&Train{ID: 1, ArrivalTick: 2})
		q.Push(&Train{ID: 9, ArrivalTick: 0})
		q.Push(&Train{ID: 2, ArrivalTick: 1})

		Convey("Peek and Pop return trains ordered by (ArrivalTick, ID) ascending", func() {
			So(q.Peek().ID, ShouldEqual, 9)
			So(q.Pop().ID, ShouldEqual, 9)
			So(q.Pop().ID, ShouldEqual, 2)
			So(q.Pop().ID, ShouldEqual, 1)
			So(q.Pop().ID, ShouldEqual, 5)
			So(q.Len(), ShouldEqual, 0)
		})

		Convey("Trains returns every queued train without removing any", func() {
			before := q.Len()
			snapshot := q.Trains()
			So(len(snapshot), ShouldEqual, before)
			So(q.Len(), ShouldEqual, before)
		})
	})

	Convey("Given an empty holding queue", t, func() {
		q := NewHoldingQueue()
		Convey("Peek returns nil", func() {
			So(q.Peek(), ShouldBeNil)
		})
	})
}
