// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"github.com/pkg/profile"
)

type (
	// Profiling can be embedded in any kong cli to profile a command. The
	// flags are hidden from the help message.
	//
	// The supported values are:
	//   - "cpu":    Enables CPU profiling.
	//   - "memory": Enables heap memory profiling.
	//   - "block":  Enables block (contention) profiling.
	//   - "mutex":  Enables mutex profiling.
	//   - "trace":  Enables trace profiling.
	//
	// The profile is written under ProfilingDir and its path is logged to
	// stderr by pkg/profile. Open it with `go tool pprof $file`.
	//
	//	stop := cli.Profiling.Start()
	//	defer stop()
	Profiling struct {
		Profiling    string `opt:"" hidden:"true" default:"" enum:",cpu,memory,block,mutex,trace"`
		ProfilingDir string `opt:"" hidden:"true" default:"." type:"path"`
	}
)

var profileModes = map[string]func(*profile.Profile){
	"cpu":    profile.CPUProfile,
	"memory": profile.MemProfile,
	"block":  profile.BlockProfile,
	"mutex":  profile.MutexProfile,
	"trace":  profile.TraceProfile,
}

// Start starts profiling and returns the function stopping it. It is a no-op
// when no mode is selected.
func (p *Profiling) Start() func() {
	mode, ok := profileModes[p.Profiling]
	if !ok {
		return func() {}
	}

	dir := p.ProfilingDir
	if dir == "" {
		dir = "."
	}
	return profile.Start(profile.ProfilePath(dir), mode, profile.NoShutdownHook).Stop
}
