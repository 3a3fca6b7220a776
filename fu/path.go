package fu

import (
	"go-ml.dev/pkg/iokit"
	"path/filepath"
)

/*
ModelPath resolves a relative model file name into the iokit cache,
absolute paths are returned as is
*/
func ModelPath(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("go-ml", "Models", s))
}

/*
CachePath resolves a relative cache directory into the iokit cache
*/
func CachePath(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("go-ml", "Cache", s))
}
