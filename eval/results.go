package eval

import (
	"encoding/json"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/dsv-rl/daaf/expconfig"
	"github.com/dsv-rl/daaf/util"
)

type resultRecord struct {
	ExpID   string  `json:"exp_id"`
	RunID   int     `json:"run_id"`
	Episode int     `json:"episode"`
	RMSE    float64 `json:"rmse"`
}

// writeResults appends one JSONL record per episode and stores the
// learned state values next to the series
func writeResults(outDir string, task expconfig.ExperimentTask, rmseSeries []float64, values []float64) error {
	lines := make([]string, 0, len(rmseSeries))
	for i, rmse := range rmseSeries {
		record := resultRecord{
			ExpID:   task.ExpID,
			RunID:   task.RunID,
			Episode: i + 1,
			RMSE:    rmse,
		}
		bs, err := json.Marshal(record)
		if err != nil {
			return err
		}
		lines = append(lines, string(bs))
	}
	if err := util.AppendToFile(path.Join(outDir, "results.jsonl"), lines...); err != nil {
		return err
	}

	bs, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return util.WriteToFile(path.Join(outDir, "state_values.json"), string(bs))
}

func plotRMSE(plotPath string, taskID string, rmseSeries []float64) error {
	if err := util.EnsureDir(path.Dir(plotPath)); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = taskID
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "RMSE"

	points := make(plotter.XYs, len(rmseSeries))
	for i, v := range rmseSeries {
		points[i] = plotter.XY{
			X: float64(i + 1),
			Y: v,
		}
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	p.Legend.Add(taskID, line)
	return p.Save(8*vg.Inch, 8*vg.Inch, plotPath)
}
