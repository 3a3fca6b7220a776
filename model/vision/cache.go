package vision

import (
	"encoding/binary"
	"github.com/peterbourgon/diskv"
	"go-ml.dev/pkg/automl/fu"
	"math"
)

/*
DiskCache is a gzip compressed on-disk feature cache
*/
type DiskCache struct {
	*diskv.Diskv
}

// keys are hex strings, the first two pairs of digits are directories
func blockTransform(s string) []string {
	if len(s) < 4 {
		return []string{}
	}
	return []string{s[0:2], s[2:4]}
}

/*
NewDiskCache creates feature cache in the directory, relative paths
are resolved into iokit cache
*/
func NewDiskCache(dir string, memoryBytes uint64) DiskCache {
	return DiskCache{diskv.New(diskv.Options{
		BasePath:     fu.CachePath(dir),
		Transform:    blockTransform,
		CacheSizeMax: memoryBytes,
		Compression:  diskv.NewGzipCompression(),
	})}
}

func (c DiskCache) Get(key string) ([]float32, bool) {
	b, err := c.Read(key)
	if err != nil || len(b)%4 != 0 {
		return nil, false
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, true
}

func (c DiskCache) Put(key string, v []float32) error {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(x))
	}
	return c.Write(key, b)
}
