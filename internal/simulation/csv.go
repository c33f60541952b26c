package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var pointsHeader = []string{
	"index",
	"asset",
	"drawdown_max",
	"gain",
	"ratio",
	"selected",
	"best_serenity",
	"best_performance",
}

func WriteCandidatesCSV(path string, points []Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCandidates(f, points); err != nil {
		return err
	}
	return f.Close()
}

// WriteCandidates writes points as CSV. Missing values are empty cells.
func WriteCandidates(out io.Writer, points []Point) error {
	w := csv.NewWriter(out)

	if err := w.Write(pointsHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Index),
			p.Asset,
			fmtFloat(p.DrawdownMax),
			fmtFloat(p.Gain),
			fmtFloat(p.Ratio),
			strconv.FormatBool(p.Selected),
			strconv.FormatBool(p.BestSerenity),
			strconv.FormatBool(p.BestPerformance),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x *float64) string {
	if x == nil {
		return ""
	}
	return strconv.FormatFloat(*x, 'f', 6, 64)
}
