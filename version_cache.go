package exiftool

import (
	"context"
	"sync"

	"github.com/mjeanroy/exiftool/process"
)

// VersionCache memoizes version probes per executable path. Entries are
// written at most once per key and never evicted for the lifetime of the
// process; concurrent first-use of the same unseen path collapses into a
// single probe whose result every caller observes.
type VersionCache struct {
	mu      sync.Mutex
	entries map[string]*versionEntry
}

type versionEntry struct {
	once    sync.Once
	version Version
	err     error
}

// NewVersionCache creates an empty cache. Most callers should use the
// process-wide cache shared by every engine instance; a dedicated cache is
// mainly useful in tests.
func NewVersionCache() *VersionCache {
	return &VersionCache{entries: make(map[string]*versionEntry)}
}

// defaultVersionCache is shared by every ExifTool instance in the process.
var defaultVersionCache = NewVersionCache()

// Load returns the version of the executable at path, probing it exactly
// once per distinct path. Callers racing on the same unseen path block on
// the single in-flight probe and receive its result, including its error.
func (c *VersionCache) Load(ctx context.Context, path string, executor process.Executor) (Version, error) {
	c.mu.Lock()
	entry, ok := c.entries[path]
	if !ok {
		entry = &versionEntry{}
		c.entries[path] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.version, entry.err = probeVersion(ctx, path, executor)
	})
	return entry.version, entry.err
}

// probeVersion runs the tool once with the version-query argument and
// parses the single-line numeric output. Unparsable output defaults to the
// zero version rather than failing: only an execution failure means the
// tool is missing.
func probeVersion(ctx context.Context, path string, executor process.Executor) (Version, error) {
	cmd, err := process.NewCommand(path, "-ver")
	if err != nil {
		return Version{}, err
	}

	res, err := executor.Execute(ctx, cmd)
	if err != nil {
		return Version{}, &NotFoundError{Path: path, cause: err}
	}
	if !res.Success() {
		return Version{}, &NotFoundError{Path: path}
	}

	version, err := ParseVersion(res.Output)
	if err != nil {
		return Version{}, nil
	}
	return version, nil
}
