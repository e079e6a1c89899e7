//go:build debug

package script

import "io/fs"

// DefaultSource reads system assets from the flash so engine scripts can
// be edited without rebuilding.
func DefaultSource(flash fs.FS) Source {
	return FSSource{FS: flash}
}
