// Package exiftool drives Phil Harvey's exiftool as an external process,
// with optional -stay_open daemon mode to avoid paying the full
// process-startup cost on every invocation.
//
// The default engine spawns one throwaway process per call:
//
//	tool, err := exiftool.New()
//	if err != nil {
//		return err
//	}
//	defer tool.Close()
//	meta, err := tool.ReadMetadata(ctx, "photo.jpg", "ISO", "Aperture")
//
// Busy systems should enable the persistent worker, or a pool of them:
//
//	tool, err := exiftool.New(
//		exiftool.WithPoolSize(4, 10*time.Minute),
//	)
//
// Stay-open workers are torn down automatically after the configured idle
// timeout and respawned transparently on the next call. Enabling stay-open
// mode requires exiftool 8.36 or later; New fails with an
// *UnsupportedFeatureError when the probed version is older, and the
// caller may fall back to the default engine.
package exiftool
