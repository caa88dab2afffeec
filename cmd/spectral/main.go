// Command spectral renders, analyzes and runs spectral effects.
//
// Usage:
//
//	spectral render [--config fx.yaml] in.wav out.wav
//	spectral analyze [--low 500 --high 2000] in.wav
//	spectral live [--config fx.yaml]
//	spectral devices
//	spectral windows [--size 2048]
//
// The effect and its knobs come from a YAML file (see internal/config);
// --effect overrides the effect type.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("spectral failed", "err", err)
		os.Exit(1)
	}
}
