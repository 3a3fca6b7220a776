package main

import (
	"context"
	"fmt"
	"github.com/alexflint/go-arg"
	"go-ml.dev/pkg/automl/automl"
	"go-ml.dev/pkg/automl/config"
	"go-ml.dev/pkg/automl/console"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/model/transforms"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros/zlog"
	"os"
	"time"
)

var (
	name    = "taxifare"
	version = "16.Oct.2020"
)

type args struct {
	Config    string        `help:"YAML configuration file" arg:"-c"`
	MaxTrials int           `help:"maximum count of trials" arg:"-n"`
	MaxTime   time.Duration `help:"experiment time budget"`
	History   string        `help:"SQLite file to store trials"`
	Verbose   bool          `arg:"-v"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# predicts taxi fare by the best regression trainer found in the experiment`, name)
}

const label = "FareAmount"

var layout = tables.CSV{
	Header: true,
	Fields: []tables.Field{
		{Name: "VendorId", Index: 0, Kind: tables.String},
		{Name: "RateCode", Index: 1, Kind: tables.String},
		{Name: "PassengerCount", Index: 2, Kind: tables.Float},
		{Name: "TripTime", Index: 3, Kind: tables.Float},
		{Name: "TripDistance", Index: 4, Kind: tables.Float},
		{Name: "PaymentType", Index: 5, Kind: tables.String},
		{Name: label, Index: 6, Kind: tables.Float},
	},
}

func featurization() model.Pipeline {
	return model.Pipeline{}.
		Append(transforms.OneHot{Output: "VendorIdEncoded", Input: "VendorId"}).
		Append(transforms.OneHot{Output: "RateCodeEncoded", Input: "RateCode"}).
		Append(transforms.OneHot{Output: "PaymentTypeEncoded", Input: "PaymentType"}).
		Append(transforms.NormalizeMeanVariance{Columns: []string{"PassengerCount", "TripTime", "TripDistance"}}).
		Append(transforms.Concatenate("Features",
			"VendorIdEncoded", "RateCodeEncoded", "PaymentTypeEncoded",
			"PassengerCount", "TripTime", "TripDistance"))
}

// fares out of range are outliers
func outliers(r fu.Struct) bool {
	v, ok := r.Float(label)
	return ok && v >= 1 && v <= 150
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
	c := cfg.TaxiFare
	c.MaxTrials = fu.Fnzi(args.MaxTrials, c.MaxTrials)
	if args.MaxTime > 0 {
		c.MaxTime = args.MaxTime
	}
	c.History = fu.Fnzs(args.History, c.History)

	format := console.Plain(os.Stdout)
	if cfg.Color {
		format = console.Colored(os.Stdout)
	}
	format.Width = cfg.Width

	train, err := layout.ReadFile(cfg.Asset(c.Train))
	if err != nil {
		panic(err)
	}
	test, err := layout.ReadFile(cfg.Asset(c.Test))
	if err != nil {
		panic(err)
	}
	train = train.Filter(outliers)

	features, err := featurization().FitPipeline(train)
	if err != nil {
		panic(err)
	}
	source := model.LuckyTransform(features, train)
	valid := model.LuckyTransform(features, test)
	format.ShowDataView(source.Except("VendorIdEncoded", "RateCodeEncoded", "PaymentTypeEncoded"), c.Preview)

	e := automl.Experiment{
		Candidates:   automl.RegressionCandidates(label, "Features"),
		MaxTrials:    c.MaxTrials,
		MaxTime:      c.MaxTime,
		ScoreHistory: c.ScoreHistory,
		Seed:         c.Seed,
	}
	if args.Verbose {
		e.Verbose = format.Line
	}
	observers := []automl.Observer{automl.NewReporter(format)}
	if c.History != "" {
		h, err := automl.OpenHistory(c.History)
		if err != nil {
			panic(err)
		}
		defer h.Close()
		format.Line("experiment run " + h.Run())
		observers = append(observers, h)
	}

	format.WriteHeader("=============== Training the model ===============",
		fmt.Sprintf("Running AutoML regression experiment for %v...", c.MaxTime))
	report, err := e.Execute(context.Background(), model.Dataset{
		Source:     source,
		Validation: valid,
		Label:      label,
		Features:   "Features",
	}, observers...)
	if err != nil {
		zlog.Warning(err.Error())
		return
	}
	format.Line(fmt.Sprintf("Total trials: %d", report.Trials))
	format.Line(fmt.Sprintf("Best trainer: %v (trial %d)", report.Trainer, report.TheBest))

	format.WriteHeader("===== Evaluating model's accuracy with test data =====")
	q, err := report.Model.Transform(valid)
	if err != nil {
		panic(err)
	}
	m, err := model.RegressionOf(q, label, "Score")
	if err != nil {
		panic(err)
	}
	format.PrintRegressionMetrics(report.Trainer, m)
}
