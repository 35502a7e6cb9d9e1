package tesseract

import (
	"sync/atomic"

	version "github.com/hashicorp/go-version"

	"github.com/ironsheep/tesseract/internal/run"
)

// minTSVVersion is the engine release that introduced TSV output and the
// "--psm" flag spelling.
var minTSVVersion = version.Must(version.NewVersion("3.05"))

// cachedVersion memoizes the engine version for the life of the process.
// The first successful computation wins; concurrent first callers may both
// query the engine, but they converge on one published value. A failed query
// is not cached and is retried by later callers.
var cachedVersion atomic.Pointer[version.Version]

// Version reports the version of the engine resolved via DefaultCommand,
// computed lazily on first use and reused for the remaining process
// lifetime.
func Version() (*version.Version, error) {
	if v := cachedVersion.Load(); v != nil {
		return v, nil
	}
	v, err := run.Version(DefaultCommand)
	if err != nil {
		return nil, err
	}
	cachedVersion.CompareAndSwap(nil, v)
	return cachedVersion.Load(), nil
}
