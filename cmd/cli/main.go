package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"intraday-simulator/internal/app"
	"intraday-simulator/internal/appstate"
	"intraday-simulator/internal/config"
	"intraday-simulator/internal/logger"
	"intraday-simulator/internal/model"
	"intraday-simulator/internal/simulation"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	selectionFlags := []cli.Flag{
		&cli.Float64Flag{Name: "capital", Aliases: []string{"c"}, Usage: "allocated capital (must exist in the store)", Required: true},
		&cli.Float64Flag{Name: "drawdown-max", Aliases: []string{"dd"}, Usage: "maximum acceptable drawdown (default: limits.default_drawdown)"},
		&cli.StringFlag{Name: "objective", Aliases: []string{"o"}, Usage: "serenity or performance", Value: "serenity"},
	}

	return &cli.App{
		Name:  "scenario-cli",
		Usage: "pick the best backtested intraday scenario for a capital and drawdown ceiling",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to YAML config", EnvVars: []string{"CONFIG_FILE"}},
			&cli.StringFlag{Name: "log-level", Usage: "override log.level"},
			&cli.BoolFlag{Name: "json", Usage: "print the application state as JSON"},
		},
		Commands: []*cli.Command{
			{
				Name:   "capitals",
				Usage:  "list the capitals available in the store",
				Action: cmdCapitals,
			},
			{
				Name:  "simulate",
				Usage: "select the best scenario",
				Flags: append(selectionFlags,
					&cli.BoolFlag{Name: "candidates", Usage: "also print every candidate"},
				),
				Action: cmdSimulate,
			},
			{
				Name:  "scenarios",
				Usage: "export the candidate scatter series as CSV",
				Flags: append(selectionFlags,
					&cli.StringFlag{Name: "out", Usage: "output CSV path (default: stdout)"},
				),
				Action: cmdScenarios,
			},
		},
	}
}

func open(c *cli.Context) (*app.App, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return app.New(c.Context, cfg, lg)
}

func cmdCapitals(c *cli.Context) error {
	a, err := open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	s := loadCapitals(c.Context, a.Engine, appstate.Initial(a.Config.Limits.DrawdownCeiling, a.Config.Limits.DefaultDrawdown))
	return render(c, a, s, renderCapitals)
}

func loadCapitals(ctx context.Context, e *simulation.Engine, s appstate.State) appstate.State {
	s = appstate.Reduce(s, appstate.CapitalsRequested{})
	caps, err := e.LoadCapitals(ctx)
	if err != nil {
		return appstate.Reduce(s, appstate.CapitalsFailed{Err: err})
	}
	return appstate.Reduce(s, appstate.CapitalsLoaded{Capitals: caps})
}

// runSelection applies the flags to s and runs one selection.
func runSelection(c *cli.Context, a *app.App) (appstate.State, *simulation.Outcome, error) {
	s := appstate.Initial(a.Config.Limits.DrawdownCeiling, a.Config.Limits.DefaultDrawdown)

	objective, err := model.ParseObjective(c.String("objective"))
	if err != nil {
		return s, nil, err
	}
	s = appstate.Reduce(s, appstate.CapitalSelected{Capital: c.Float64("capital")})
	if c.IsSet("drawdown-max") {
		s = appstate.Reduce(s, appstate.DrawdownChanged{Value: c.Float64("drawdown-max")})
	}
	s = appstate.Reduce(s, appstate.ObjectiveSelected{Objective: objective})

	s = appstate.Reduce(s, appstate.SimulationRequested{})
	out, err := a.Engine.Run(c.Context, s.Request())
	if err != nil {
		a.Logger.Debug("selection failed", zap.Error(err))
	}
	return appstate.Reduce(s, appstate.OutcomeAction(out, err)), out, nil
}

func cmdSimulate(c *cli.Context) error {
	a, err := open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	s, _, err := runSelection(c, a)
	if err != nil {
		return err
	}
	return render(c, a, s, func(a *app.App, s appstate.State) {
		renderResult(a, s)
		if c.Bool("candidates") {
			renderCandidates(a, s)
		}
	})
}

func cmdScenarios(c *cli.Context) error {
	a, err := open(c)
	if err != nil {
		return err
	}
	defer a.Close()

	s, out, err := runSelection(c, a)
	if err != nil {
		return err
	}
	if s.ErrorKind != appstate.ErrorNone && s.ErrorKind != appstate.ErrorNoResult {
		return cli.Exit(s.Message, 1)
	}

	points := simulation.Points(out)
	if path := c.String("out"); path != "" {
		if err := simulation.WriteCandidatesCSV(path, points); err != nil {
			return err
		}
		a.Logger.Info("candidates written", zap.String("path", path), zap.Int("rows", len(points)))
		return nil
	}
	return simulation.WriteCandidates(os.Stdout, points)
}

// render prints s, or its JSON form with --json. A state carrying an error
// message exits non-zero.
func render(c *cli.Context, a *app.App, s appstate.State, text func(*app.App, appstate.State)) error {
	if c.Bool("json") {
		if err := printJSON(os.Stdout, s); err != nil {
			return err
		}
	} else if s.Message == "" {
		text(a, s)
	}
	if s.Message != "" {
		return cli.Exit(s.Message, 1)
	}
	return nil
}
