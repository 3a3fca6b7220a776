package config

import (
	"gotest.tools/assert"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"
)

func Test_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, ioutil.WriteFile(path, []byte(`
assets: /data/assets
taxi_fare:
  max_trials: 5
  max_time: 30s
transfer_learning:
  inception:
    image_width: 32
`), 0644))
	c, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, c.TaxiFare.MaxTrials, 5)
	assert.Equal(t, c.TaxiFare.MaxTime, 30*time.Second)
	assert.Equal(t, c.TaxiFare.Seed, int64(1))
	assert.Equal(t, c.TransferLearning.Inception.ImageWidth, 32)
	assert.Equal(t, c.TransferLearning.Inception.ImageHeight, 224)
	assert.Equal(t, c.Asset(c.TaxiFare.Train), "/data/assets/inputs/taxi-fare-train.csv")
	assert.Equal(t, c.Asset("/abs"), "/abs")
}

func Test_LoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Assert(t, err != nil)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NilError(t, ioutil.WriteFile(path, []byte("taxi_fare: [1"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}
