package comm

import (
	"sort"
	"sync"
	"testing"
)

func TestBcastDeliversRank0Value(t *testing.T) {
	comms := NewLocalGroup(4)
	var wg sync.WaitGroup
	got := make([]int, 4)
	wg.Add(4)
	for i, c := range comms {
		i, c := i, c
		go func() {
			defer wg.Done()
			v := 0
			if c.Rank() == 0 {
				v = 99
			}
			c.Bcast(&v)
			got[i] = v
		}()
	}
	wg.Wait()
	for i, v := range got {
		if v != 99 {
			t.Errorf("rank %d saw %d after Bcast, want 99", i, v)
		}
	}
}

func TestAllreduceSumAcrossRanks(t *testing.T) {
	comms := NewLocalGroup(5)
	var wg sync.WaitGroup
	got := make([]int, 5)
	wg.Add(5)
	for i, c := range comms {
		i, c := i, c
		go func() {
			defer wg.Done()
			got[i] = c.AllreduceSum(i + 1)
		}()
	}
	wg.Wait()
	for i, v := range got {
		if v != 15 { // 1+2+3+4+5
			t.Errorf("rank %d saw sum %d, want 15", i, v)
		}
	}
}

func TestSendRecvRoundTrip(t *testing.T) {
	comms := NewLocalGroup(2)
	var wg sync.WaitGroup
	wg.Add(2)

	var received []TrainMsg
	go func() {
		defer wg.Done()
		comms[0].Send(1, 42, TrainMsg{ID: 7})
		comms[0].Send(1, 42, Sentinel)
	}()
	go func() {
		defer wg.Done()
		received = comms[1].Recv(42, 2)
	}()
	wg.Wait()

	if len(received) != 2 {
		t.Fatalf("Recv returned %d messages, want 2", len(received))
	}
	if received[0].ID != 7 || received[1].Sentinel != true {
		t.Errorf("unexpected received messages: %+v", received)
	}
}

func TestRecvStashesMismatchedTags(t *testing.T) {
	comms := NewLocalGroup(2)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		comms[0].Send(1, 2, TrainMsg{ID: 1})
		comms[0].Send(1, 1, TrainMsg{ID: 2})
		comms[0].Send(1, 2, TrainMsg{ID: 3})
	}()
	wg.Wait()

	forTag1 := comms[1].Recv(1, 1)
	if len(forTag1) != 1 || forTag1[0].ID != 2 {
		t.Fatalf("Recv(1, 1) = %+v", forTag1)
	}
	forTag2 := comms[1].Recv(2, 2)
	if len(forTag2) != 2 {
		t.Fatalf("Recv(2, 2) returned %d messages, want 2", len(forTag2))
	}
}

func TestGatherStringsFlattensAndOnlyRank0GetsResult(t *testing.T) {
	comms := NewLocalGroup(3)
	var wg sync.WaitGroup
	got := make([][]string, 3)
	wg.Add(3)
	for i, c := range comms {
		i, c := i, c
		go func() {
			defer wg.Done()
			got[i] = c.GatherStrings([]string{string(rune('a' + i))})
		}()
	}
	wg.Wait()

	if got[1] != nil || got[2] != nil {
		t.Errorf("non-zero ranks should get nil, got %v / %v", got[1], got[2])
	}
	sort.Strings(got[0])
	if len(got[0]) != 3 {
		t.Fatalf("rank 0 gathered %v, want 3 entries", got[0])
	}
}

func TestBarrierReleasesEveryRank(t *testing.T) {
	comms := NewLocalGroup(8)
	var wg sync.WaitGroup
	wg.Add(8)
	for _, c := range comms {
		c := c
		go func() {
			defer wg.Done()
			c.Barrier()
		}()
	}
	wg.Wait()
}
