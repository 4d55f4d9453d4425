// Package config loads the run description (network topology plus run
// parameters) from a YAML file via viper, the way niceyeti-tabular's
// training config loader does: read the file with viper, then unmarshal
// into the package's own typed struct rather than relying on viper's
// get-by-key API at call sites.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tracktitans/transitsim/internal/topology"
)

// Run is everything needed to build a Topology and drive an Engine: the
// network description plus the run parameters that aren't part
// of the network itself.
type Run struct {
	Stations []StationConfig    `mapstructure:"stations"`
	Lines    map[string][]string `mapstructure:"lines"`
	Trains   map[string]int     `mapstructure:"trains"`

	TotalTicks   int    `mapstructure:"total_ticks"`
	PrintCount   int    `mapstructure:"print_count"`
	ProcessCount int    `mapstructure:"process_count"`
	LiveviewAddr string `mapstructure:"liveview_addr"`
}

// StationConfig is one station's static description.
type StationConfig struct {
	Name       string `mapstructure:"name"`
	Popularity int    `mapstructure:"popularity"`
	// Distances maps a destination station name to the travel time of the
	// direct edge to it, if one exists.
	Distances map[string]int `mapstructure:"distances"`
}

// Load reads path as YAML via viper and returns the parsed Run.
func Load(path string) (*Run, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	run := &Run{
		TotalTicks:   10,
		PrintCount:   10,
		ProcessCount: 1,
	}
	if err := vp.Unmarshal(run); err != nil {
		return nil, err
	}
	return run, nil
}

// Topology converts Run's station/line/train description into a
// topology.Input, building a dense adjacency matrix from the sparse
// per-station distance maps. It errors on a line name that isn't one of
// "green", "yellow", "blue" rather than silently dropping it.
func (r *Run) Topology() (topology.Input, error) {
	names := make([]string, len(r.Stations))
	popularities := make([]int, len(r.Stations))
	index := make(map[string]int, len(r.Stations))
	for i, st := range r.Stations {
		names[i] = st.Name
		popularities[i] = st.Popularity
		index[st.Name] = i
	}

	adjacency := make([][]int, len(names))
	for i := range adjacency {
		adjacency[i] = make([]int, len(names))
	}
	for i, st := range r.Stations {
		for dstName, distance := range st.Distances {
			if j, ok := index[dstName]; ok {
				adjacency[i][j] = distance
			}
		}
	}

	stationLines := make(map[topology.Line][]string, len(r.Lines))
	for name, seq := range r.Lines {
		line, ok := lineNamed(name)
		if !ok {
			return topology.Input{}, &topology.ValidationError{Reason: "unknown line name " + name}
		}
		stationLines[line] = seq
	}

	numTrains := make(map[topology.Line]int, len(r.Trains))
	for name, n := range r.Trains {
		line, ok := lineNamed(name)
		if !ok {
			return topology.Input{}, &topology.ValidationError{Reason: "unknown line name " + name}
		}
		numTrains[line] = n
	}

	return topology.Input{
		StationNames: names,
		Popularities: popularities,
		Adjacency:    adjacency,
		StationLines: stationLines,
		NumTrains:    numTrains,
	}, nil
}

func lineNamed(name string) (topology.Line, bool) {
	for _, l := range topology.Lines {
		if l.String() == name {
			return l, true
		}
	}
	return 0, false
}
