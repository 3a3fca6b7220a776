/*
Package config loads settings of the taxi fare and transfer learning commands
*/
package config

import (
	"go-ml.dev/pkg/zorros"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"path/filepath"
	"time"
)

/*
TaxiFare configures the regression experiment
*/
type TaxiFare struct {
	Train        string        `yaml:"train"`
	Test         string        `yaml:"test"`
	MaxTrials    int           `yaml:"max_trials"`
	MaxTime      time.Duration `yaml:"max_time"`
	ScoreHistory int           `yaml:"score_history"`
	Seed         int64         `yaml:"seed"`
	History      string        `yaml:"history"` // SQLite file, history is not stored if empty
	Preview      int           `yaml:"preview"` // rows to show
}

/*
Inception describes the frozen network input
*/
type Inception struct {
	Network      string  `yaml:"network"` // weights file, relative to the models cache
	ImageWidth   int     `yaml:"image_width"`
	ImageHeight  int     `yaml:"image_height"`
	Mean         float32 `yaml:"mean"`
	ChannelsLast bool    `yaml:"channels_last"`
	Features     int     `yaml:"features"` // outputs of the generated network
	Seed         int64   `yaml:"seed"`     // seed of the generated network
}

/*
TransferLearning configures the image classification pipeline
*/
type TransferLearning struct {
	TrainTags     string    `yaml:"train_tags"`
	TrainImages   string    `yaml:"train_images"`
	PredictList   string    `yaml:"predict_list"`
	PredictImages string    `yaml:"predict_images"`
	SingleImage   string    `yaml:"single_image"`
	FeatureCache  string    `yaml:"feature_cache"` // cache directory, features are not cached if empty
	Iterations    int       `yaml:"iterations"`
	Inception     Inception `yaml:"inception"`
}

/*
Config is the whole configuration file
*/
type Config struct {
	Assets           string           `yaml:"assets"`
	Width            int              `yaml:"width"`
	Color            bool             `yaml:"color"`
	TaxiFare         TaxiFare         `yaml:"taxi_fare"`
	TransferLearning TransferLearning `yaml:"transfer_learning"`
}

/*
Default returns configuration matching the layout of tutorial assets
*/
func Default() Config {
	return Config{
		Assets: "assets",
		Width:  114,
		Color:  true,
		TaxiFare: TaxiFare{
			Train:        "inputs/taxi-fare-train.csv",
			Test:         "inputs/taxi-fare-test.csv",
			MaxTrials:    20,
			MaxTime:      60 * time.Second,
			ScoreHistory: 0,
			Seed:         1,
			Preview:      4,
		},
		TransferLearning: TransferLearning{
			TrainTags:     "inputs-train/data/tags.tsv",
			TrainImages:   "inputs-train/data",
			PredictList:   "inputs-predict/data/image_list.tsv",
			PredictImages: "inputs-predict/data",
			SingleImage:   "inputs-predict-single/data/toaster3.jpg",
			Iterations:    100,
			Inception: Inception{
				Network:      "inception/projection.bin",
				ImageWidth:   224,
				ImageHeight:  224,
				Mean:         117,
				ChannelsLast: true,
				Features:     64,
				Seed:         1,
			},
		},
	}
}

/*
Load reads YAML file over the default configuration
*/
func Load(path string) (Config, error) {
	c := Default()
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return c, zorros.Trace(err)
	}
	if err = yaml.Unmarshal(b, &c); err != nil {
		return c, zorros.Wrapf(err, "failed to parse config %v: %v", path, err.Error())
	}
	return c, nil
}

/*
Asset resolves a relative path against the assets directory
*/
func (c Config) Asset(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Assets, path)
}
