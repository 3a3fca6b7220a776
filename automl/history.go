package automl

import (
	"database/sql"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
)

const historySchema = `create table if not exists trials (
	run       text    not null,
	iteration integer not null,
	trainer   text    not null,
	rsquared  real,
	mae       real,
	mse       real,
	rmse      real,
	seconds   real,
	error     text,
	primary key (run, iteration)
)`

/*
History is an Observer storing trials of experiment runs in SQLite database.
Unavailable metrics are stored as NULL.
*/
type History struct {
	db        *sql.DB
	run       string
	iteration int
}

/*
Record is one stored trial
*/
type Record struct {
	Run       string
	Iteration int
	Trainer   string
	RSquared  sql.NullFloat64
	MAE       sql.NullFloat64
	MSE       sql.NullFloat64
	RMSE      sql.NullFloat64
	Seconds   sql.NullFloat64
	Error     sql.NullString
}

/*
OpenHistory opens or creates the database and starts a new run
*/
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(historySchema); err != nil {
		db.Close()
		return nil, zorros.Wrapf(err, "failed to create history schema: %v", err.Error())
	}
	return &History{db: db, run: uuid.New().String()}, nil
}

/*
Run returns identifier of the current run
*/
func (h *History) Run() string {
	return h.run
}

func (h *History) Close() error {
	return h.db.Close()
}

func nullable(m model.Metric) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Float(), Valid: m.Ok()}
}

/*
Record stores the trial as the next iteration of the current run
*/
func (h *History) Record(t Trial) error {
	h.iteration++
	r := Record{Run: h.run, Iteration: h.iteration}
	if t = normalized(t); t == nil {
		r.Error = sql.NullString{String: NoDiagnostic, Valid: true}
	} else {
		r.Trainer = t.TrainerName()
	}
	switch x := t.(type) {
	case Success:
		if x.Metrics != nil {
			r.RSquared = nullable(x.Metrics.RSquared)
			r.MAE = nullable(x.Metrics.MeanAbsoluteError)
			r.MSE = nullable(x.Metrics.MeanSquaredError)
			r.RMSE = nullable(x.Metrics.RootMeanSquaredError)
		}
		r.Seconds = sql.NullFloat64{Float64: x.Elapsed.Seconds(), Valid: true}
	case Failure:
		r.Error = sql.NullString{String: diagnostic(x.Cause), Valid: true}
	}
	_, err := h.db.Exec(
		`insert into trials (run, iteration, trainer, rsquared, mae, mse, rmse, seconds, error)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Run, r.Iteration, r.Trainer, r.RSquared, r.MAE, r.MSE, r.RMSE, r.Seconds, r.Error)
	if err != nil {
		return zorros.Wrapf(err, "failed to store trial %d: %v", r.Iteration, err.Error())
	}
	return nil
}

/*
Report implements Observer, storage errors are logged and ignored
*/
func (h *History) Report(t Trial) {
	if err := h.Record(t); err != nil {
		zlog.Warning(err.Error())
	}
}

/*
Trials returns stored trials of the run in iteration order
*/
func (h *History) Trials(run string) ([]Record, error) {
	rows, err := h.db.Query(
		`select run, iteration, trainer, rsquared, mae, mse, rmse, seconds, error
		from trials where run = ? order by iteration`, run)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	var r []Record
	for rows.Next() {
		var x Record
		if err = rows.Scan(&x.Run, &x.Iteration, &x.Trainer, &x.RSquared, &x.MAE, &x.MSE, &x.RMSE, &x.Seconds, &x.Error); err != nil {
			return nil, zorros.Trace(err)
		}
		r = append(r, x)
	}
	return r, zorros.Trace(rows.Err())
}
