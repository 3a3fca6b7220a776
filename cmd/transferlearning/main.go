package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"
	"github.com/montanaflynn/stats"
	"go-ml.dev/pkg/automl/config"
	"go-ml.dev/pkg/automl/console"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/model/maxent"
	"go-ml.dev/pkg/automl/model/transforms"
	"go-ml.dev/pkg/automl/model/vision"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
	"os"
	"path/filepath"
)

var (
	name    = "transferlearning"
	version = "16.Oct.2020"
)

type args struct {
	Config  string `help:"YAML configuration file" arg:"-c"`
	Image   string `help:"image to classify after training"`
	NoCache bool   `help:"do not cache extracted features"`
	Verbose bool   `arg:"-v"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# trains image classifier on top of features of a frozen network`, name)
}

const (
	labelToKey          = "LabelToKey"
	predictedLabelValue = "PredictedLabelValue"
	features            = "softmax2_pre_activation"
)

var tags = tables.TSV(
	tables.Field{Name: "ImagePath", Index: 0, Kind: tables.String},
	tables.Field{Name: "Label", Index: 1, Kind: tables.String})

var imageList = tables.TSV(tables.Field{Name: "ImagePath", Index: 0, Kind: tables.String})

/*
network loads the frozen network weights, missing weights file is generated
and stored for the next run
*/
func network(c config.Inception) (*vision.Projection, error) {
	inputs := c.ImageWidth * c.ImageHeight * 3
	path := fu.ModelPath(c.Network)
	if _, err := os.Stat(path); err == nil {
		p, err := vision.LoadProjection(path)
		if err != nil {
			return nil, err
		}
		if n, _ := p.Dims(); n != inputs {
			return nil, zorros.Errorf("network %v expects %d inputs but images have %d", path, n, inputs)
		}
		return p, nil
	}
	p := vision.NewProjection(inputs, c.Features, c.Seed)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, zorros.Trace(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer f.Close()
	if _, err = p.WriteTo(f); err != nil {
		return nil, zorros.Wrapf(err, "failed to write network weights: %v", err.Error())
	}
	return p, nil
}

func progress(total int) func() {
	bar := pb.StartNew(total)
	n := 0
	return func() {
		bar.Increment()
		if n++; n == total {
			bar.Finish()
		}
	}
}

func estimator(cfg config.Config, net vision.Network, cache vision.FeatureCache, verbose func(string)) model.Pipeline {
	c := cfg.TransferLearning
	return model.Pipeline{}.
		Append(transforms.MapValueToKey{Output: labelToKey, Input: "Label"}).
		Append(vision.LoadImages{Output: "input", Folder: cfg.Asset(c.TrainImages), Input: "ImagePath"}).
		Append(vision.ResizeImages{Output: "input", Width: c.Inception.ImageWidth, Height: c.Inception.ImageHeight, Input: "input"}).
		Append(vision.FeatureExtractor{
			Pixels: vision.ExtractPixels{
				Input:      "input",
				Interleave: c.Inception.ChannelsLast,
				Offset:     c.Inception.Mean,
			},
			Network:  net,
			Output:   features,
			Cache:    cache,
			Progress: progress,
		}).
		AppendCacheCheckpoint().
		Append(maxent.Trainer{
			Label:      labelToKey,
			Features:   features,
			Iterations: c.Iterations,
			Verbose:    verbose,
		}).
		Append(transforms.MapKeyToValue{
			Output: predictedLabelValue,
			Input:  maxent.DefaultPredicted,
			Key:    labelToKey,
			Value:  "Label",
		})
}

func displayResults(format *console.Format, t *tables.Table) {
	for _, r := range t.Rows() {
		path, _ := r.String("ImagePath")
		label, _ := r.Value(predictedLabelValue)
		score, _ := r.Floats(maxent.DefaultScore)
		best, _ := stats.Max(fu.Float64s(score))
		format.Line(fmt.Sprintf("Image: %v predicted as: %v with score: %v ", filepath.Base(path), label, best))
	}
}

// relative paths would be resolved against the training images folder
func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// images to classify have no labels
func unlabeled(paths ...string) *tables.Table {
	rows := make([][]interface{}, len(paths))
	for i, p := range paths {
		rows[i] = []interface{}{p, ""}
	}
	return tables.MustNew([]string{"ImagePath", "Label"}, rows...)
}

func main() {
	var args args
	arg.MustParse(&args)

	cfg := config.Default()
	if args.Config != "" {
		var err error
		if cfg, err = config.Load(args.Config); err != nil {
			panic(err)
		}
	}
	c := cfg.TransferLearning
	format := console.Plain(os.Stdout)
	if cfg.Color {
		format = console.Colored(os.Stdout)
	}
	format.Width = cfg.Width
	var verbose func(string)
	if args.Verbose {
		verbose = format.Line
	}

	net, err := network(c.Inception)
	if err != nil {
		panic(err)
	}
	var cache vision.FeatureCache
	if c.FeatureCache != "" && !args.NoCache {
		cache = vision.NewDiskCache(c.FeatureCache, 64*1024*1024)
	}

	data, err := tags.ReadFile(cfg.Asset(c.TrainTags))
	if err != nil {
		panic(err)
	}

	format.WriteHeader("=============== Training classification model ===============")
	trained, err := estimator(cfg, net, cache, verbose).FitPipeline(data)
	if err != nil {
		panic(err)
	}
	predictions, err := trained.Transform(data)
	if err != nil {
		panic(err)
	}
	displayResults(format, predictions)

	metrics, err := model.ClassificationOf(predictions, labelToKey, maxent.DefaultScore)
	if err != nil {
		panic(err)
	}
	format.PrintClassificationMetrics(metrics)

	list, err := imageList.ReadFile(cfg.Asset(c.PredictList))
	if err != nil {
		panic(err)
	}
	folder := cfg.Asset(c.PredictImages)
	paths := list.Col("ImagePath").Strings()
	for i, p := range paths {
		paths[i] = absolute(filepath.Join(folder, p))
	}
	predictions, err = trained.Transform(unlabeled(paths...))
	if err != nil {
		panic(err)
	}
	format.WriteHeader("=============== Making classifications ===============")
	displayResults(format, predictions)

	single := absolute(fu.Fnzs(args.Image, cfg.Asset(c.SingleImage)))
	predictions, err = trained.Transform(unlabeled(single))
	if err != nil {
		panic(err)
	}
	format.WriteHeader("=============== Making single image classification ===============")
	displayResults(format, predictions)
}
