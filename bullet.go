package bullet

import (
	"errors"
	"fmt"
)

// Version is the Bullet version these bindings are generated against. The
// native library must report the same number from btGetVersion.
const Version = 288

var (
	// ErrVersionMismatch is matched by the error Init returns when the loaded
	// binary reports a different Bullet version. It is not worth retrying.
	ErrVersionMismatch = errors.New("bullet: native version mismatch")

	// ErrInvalidArgument reports a nil root, nil pool, or bad offset.
	ErrInvalidArgument = errors.New("bullet: invalid argument")

	// ErrNotInitialized is returned by native-backed operations on a context
	// whose Init has not succeeded.
	ErrNotInitialized = errors.New("bullet: not initialized")

	// ErrNoMeshParts is returned when a static shape is requested for a tree
	// without mesh parts.
	ErrNoMeshParts = errors.New("bullet: no mesh parts")

	// ErrUnsupportedMesh is returned for mesh parts that cannot be turned into
	// triangle collision data.
	ErrUnsupportedMesh = errors.New("bullet: unsupported mesh")

	// ErrUnsupportedPlatform is returned by LoadLibrary where no dynamic
	// loader is available.
	ErrUnsupportedPlatform = errors.New("bullet: dynamic loading unsupported on this platform")
)

// VersionMismatchError carries both version numbers of a failed check.
type VersionMismatchError struct {
	Native   int
	Expected int
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("bullet: binaries version (%d) does not match source version (%d)", e.Native, e.Expected)
}

// Is makes errors.Is(err, ErrVersionMismatch) succeed.
func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}
