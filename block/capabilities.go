package block

import (
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/lz4x/lz4x/internal/logging"
)

// Capabilities reports which wide-word tricks the running CPU
// supports. The codec's match-extension helpers (commonBytes32/64)
// already use plain 32/64-bit loads regardless of this report; it
// exists so callers building higher-level tooling (benchmarks, a
// diagnostics command) can explain observed throughput differences
// across machines without guessing at the underlying hardware.
type Capabilities struct {
	HasSSE42 bool
	HasAVX2  bool
	HasNEON  bool
}

var logCapabilitiesOnce sync.Once

// QueryCapabilities inspects the running CPU via golang.org/x/sys/cpu.
// The first call from anywhere in the process logs the result through
// the package-wide diagnostic logger; stream and frame setup call this
// once per context/compressor so a caller with logging enabled sees
// which CPU features were available without asking separately.
func QueryCapabilities() Capabilities {
	caps := Capabilities{
		HasSSE42: cpu.X86.HasSSE42,
		HasAVX2:  cpu.X86.HasAVX2,
		HasNEON:  cpu.ARM64.HasASIMD,
	}
	logCapabilitiesOnce.Do(func() {
		logging.Get().Debug().
			Bool("sse42", caps.HasSSE42).
			Bool("avx2", caps.HasAVX2).
			Bool("neon", caps.HasNEON).
			Msg("queried CPU capabilities")
	})
	return caps
}
