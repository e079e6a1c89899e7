//go:build !debug

package script

import "io/fs"

// DefaultSource returns the compiled-in system assets. Build with
// -tags debug to read them from the flash instead.
func DefaultSource(flash fs.FS) Source {
	return EmbeddedSource{}
}
