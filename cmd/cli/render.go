package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"intraday-simulator/internal/app"
	"intraday-simulator/internal/appstate"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCapitals(a *app.App, s appstate.State) {
	fmt.Printf("%d capitaux disponibles\n", len(s.Capitals))
	for i := range s.Capitals {
		fmt.Printf("  %s\n", a.Formatter.Money(&s.Capitals[i]))
	}
}

func renderResult(a *app.App, s appstate.State) {
	if s.Result == nil {
		return
	}
	f := a.Formatter
	v := f.Record(s.Result.Record)
	capital, dd := s.Result.Capital, s.Result.DrawdownMax

	fmt.Println("Paramétrage optimal constaté")
	fmt.Printf("Capital %s • Drawdown max accepté %s • Objectif %s\n\n",
		f.Money(&capital), f.Money(&dd), s.Result.Objective.Label())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Instrument", v.Instrument},
		{"Risque par trade", v.RiskPerTrade},
		{"Capital utilisé à la vente", v.CapitalUsedAtSell},
		{"Gain total", v.Gain},
		{"Drawdown max", v.DrawdownMax},
		{"Gain total / Drawdown max", v.RiskAdjustedRatio},
		{"% trades gagnants", v.WinRate},
		{"Rendement annuel", v.AnnualizedReturn},
		{"Nombre de trades", v.TradeCount},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\n", r[0], r[1])
	}
	w.Flush()
}

func renderCandidates(a *app.App, s appstate.State) {
	f := a.Formatter
	fmt.Printf("\n%d candidats\n", len(s.Candidates))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tInstrument\tDrawdown\tGain\tRatio\t")
	for i, r := range s.Candidates {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n", i, f.Text(r.Asset), f.Money(r.DrawdownMax), f.Money(r.Gain), f.Ratio(r.RiskAdjustedRatio, 2))
	}
	w.Flush()
}
