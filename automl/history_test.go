package automl

import (
	"go-ml.dev/pkg/automl/model"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"path/filepath"
	"testing"
	"time"
)

func Test_History(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	assert.NilError(t, err)
	defer h.Close()
	m := metrics(0.5, 1, 2, 1.41)
	m.RSquared = model.Unavailable
	h.Report(Success{"Ols", m, 2 * time.Second})
	h.Report(Failure{"Sgd", xerrors.New("diverged")})
	r, err := h.Trials(h.Run())
	assert.NilError(t, err)
	assert.Equal(t, len(r), 2)
	assert.Equal(t, r[0].Iteration, 1)
	assert.Equal(t, r[0].Trainer, "Ols")
	assert.Assert(t, !r[0].RSquared.Valid)
	assert.Equal(t, r[0].MSE.Float64, 2.0)
	assert.Equal(t, r[0].Seconds.Float64, 2.0)
	assert.Assert(t, !r[0].Error.Valid)
	assert.Equal(t, r[1].Error.String, "diverged")
	assert.Assert(t, !r[1].MAE.Valid)

	other, err := h.Trials("unknown")
	assert.NilError(t, err)
	assert.Equal(t, len(other), 0)
}

func Test_HistoryMalformed(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	assert.NilError(t, err)
	defer h.Close()
	assert.NilError(t, h.Record(nil))
	assert.NilError(t, h.Record(&Failure{"Sgd", xerrors.New("diverged")}))
	r, err := h.Trials(h.Run())
	assert.NilError(t, err)
	assert.Equal(t, len(r), 2)
	assert.Equal(t, r[0].Trainer, "")
	assert.Equal(t, r[0].Error.String, NoDiagnostic)
	assert.Equal(t, r[1].Trainer, "Sgd")
	assert.Equal(t, r[1].Error.String, "diverged")
}
