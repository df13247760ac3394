// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfilingDisabled(t *testing.T) {
	p := Profiling{}
	stop := p.Start()
	stop()
}

func TestProfilingMemory(t *testing.T) {
	dir := t.TempDir()
	p := Profiling{Profiling: "memory", ProfilingDir: dir}
	stop := p.Start()
	_ = make([]byte, 1<<20)
	stop()

	_, err := os.Stat(filepath.Join(dir, "mem.pprof"))
	assert.NoError(t, err)
}
