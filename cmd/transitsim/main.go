// Copyright (C) 2008-2018 by Nicolas Piganeau and the TS2 TEAM
// (See AUTHORS file)
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program; if not, write to the
// Free Software Foundation, Inc.,
// 59 Temple Place - Suite 330, Boston, MA  02111-1307, USA.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	log "gopkg.in/inconshreveable/log15.v2"

	"github.com/tracktitans/transitsim/internal/comm"
	"github.com/tracktitans/transitsim/internal/config"
	"github.com/tracktitans/transitsim/internal/engine"
	"github.com/tracktitans/transitsim/internal/liveview"
	"github.com/tracktitans/transitsim/internal/topology"
)

var logger = log.New("module", "main")

func main() {
	configPath := flag.String("config", "", "path to the run's YAML configuration")
	liveviewAddr := flag.String("liveview", "", "address to serve the liveview HTTP/websocket feed on (overrides the config file); empty disables it")
	flag.Parse()

	log.Root().SetHandler(log.StdoutHandler)
	engine.InitializeLogger(log.Root())
	liveview.InitializeLogger(log.Root())

	if *configPath == "" {
		logger.Crit("missing required -config flag")
		os.Exit(1)
	}

	run, err := config.Load(*configPath)
	if err != nil {
		logger.Crit("failed to load config", "path", *configPath, "err", err)
		os.Exit(1)
	}

	input, err := run.Topology()
	if err != nil {
		logger.Crit("failed to build topology input", "err", err)
		os.Exit(1)
	}
	topo, err := topology.Build(input)
	if err != nil {
		logger.Crit("invalid topology", "err", err)
		os.Exit(1)
	}

	addr := run.LiveviewAddr
	if *liveviewAddr != "" {
		addr = *liveviewAddr
	}
	var view *liveview.Server
	if addr != "" {
		view = liveview.NewServer("transitsim", fmt.Sprintf("%d stations, %d ticks", topo.NumStations(), run.TotalTicks))
		go func() {
			if err := view.ListenAndServe(addr); err != nil {
				logger.Error("liveview http server stopped", "err", err)
			}
		}()
	}

	processCount := run.ProcessCount
	if processCount < 1 {
		processCount = 1
	}

	snapshot, err := runSimulation(topo, run.TotalTicks, run.PrintCount, processCount, view)
	if err != nil {
		logger.Crit("simulation failed", "err", err)
		os.Exit(1)
	}

	for _, line := range snapshot {
		fmt.Println(line)
	}
}

// runSimulation builds one replicated network per rank, spins up
// processCount ranks as goroutines sharing one comm group, and runs every
// rank's engine to completion. Rank 0's gathered snapshot lines are
// returned once every rank has finished.
func runSimulation(topo *topology.Topology, totalTicks, printCount, processCount int, view *liveview.Server) ([]string, error) {
	comms := comm.NewLocalGroup(processCount)

	var rank0Result []string
	group := new(errgroup.Group)
	for rank := 0; rank < processCount; rank++ {
		rank := rank
		stations := engine.BuildNetwork(topo, engine.DefaultLoadTimeGen(topo))
		eng := engine.New(comms[rank], topo, stations, totalTicks, printCount)
		group.Go(func() error {
			lines, err := eng.Run()
			if err != nil {
				return err
			}
			if rank == 0 {
				rank0Result = lines
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if view != nil {
		publishSnapshot(view, rank0Result)
	}
	return rank0Result, nil
}

// publishSnapshot feeds every gathered tick line to the liveview server,
// deriving a coarse KPISnapshot from each line's token suffixes.
func publishSnapshot(view *liveview.Server, lines []string) {
	var counter liveview.Counter
	for _, line := range lines {
		tick, tokens, ok := parseTickLine(line)
		if !ok {
			continue
		}
		holding, loading, travelling := 0, 0, 0
		for _, tok := range tokens {
			switch {
			case strings.Contains(tok, "->"):
				travelling++
			case strings.HasSuffix(tok, "%"):
				loading++
			case strings.HasSuffix(tok, "#"):
				holding++
			}
		}
		kpis := counter.Observe(holding, loading, travelling, travelling, []int{holding})
		view.Publish(liveview.TickEvent{Tick: tick, Snapshot: tokens, KPIs: kpis})
	}
}

func parseTickLine(line string) (tick int, tokens []string, ok bool) {
	head, rest, found := strings.Cut(line, ": ")
	if !found {
		return 0, nil, false
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, nil, false
	}
	if rest == "" {
		return n, nil, true
	}
	return n, strings.Split(rest, " "), true
}
