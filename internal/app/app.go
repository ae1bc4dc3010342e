package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/gridbase/formula/internal/config"
	"github.com/gridbase/formula/internal/ctxlog"
	"github.com/gridbase/formula/internal/engine"
	"github.com/gridbase/formula/internal/hcl"
	"github.com/gridbase/formula/internal/records"
)

// App executes CLI operations against a set of loaded table definitions.
// Command output goes to out; diagnostics go to the logger.
type App struct {
	out    io.Writer
	cfg    *Config
	logger *slog.Logger
}

// NewApp creates an App writing results to out and logs to logW.
func NewApp(out, logW io.Writer, cfg *Config) *App {
	return &App{
		out:    out,
		cfg:    cfg,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, logW),
	}
}

// Check loads every table definition and builds its runtime, reporting each
// formula problem (syntax, unknown references, circular references). It
// returns an error if any table failed.
func (a *App) Check(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	model, err := a.load(ctx)
	if err != nil {
		return err
	}

	failures := 0
	for _, name := range sortedTableNames(model) {
		if _, err := engine.NewTable(ctx, model.Tables[name]); err != nil {
			failures++
			fmt.Fprintf(a.out, "%s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(a.out, "%s: ok\n", name)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d tables failed validation", failures, len(model.Tables))
	}
	return nil
}

// Order prints a safe whole-table evaluation order for every formula field.
func (a *App) Order(ctx context.Context, tableName string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	table, _, err := a.buildTable(ctx, tableName)
	if err != nil {
		return err
	}

	order, err := table.EvaluationOrder()
	if err != nil {
		return err
	}
	for i, name := range order {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, name)
	}
	return nil
}

// Deps prints what a field reads, who reads it, and everything a change to
// it would force to recompute.
func (a *App) Deps(ctx context.Context, tableName, fieldName string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	table, _, err := a.buildTable(ctx, tableName)
	if err != nil {
		return err
	}

	deps, err := table.Dependencies(fieldName)
	if err != nil {
		return err
	}
	dependents, err := table.Dependents(fieldName)
	if err != nil {
		return err
	}
	affected, err := table.Affected(fieldName)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", fieldName)
	fmt.Fprintf(a.out, "  reads:      %s\n", joinOrNone(deps))
	fmt.Fprintf(a.out, "  read by:    %s\n", joinOrNone(dependents))
	fmt.Fprintf(a.out, "  recomputes: %s\n", joinOrNone(affected))
	return nil
}

// Eval loads the records fixture, computes every formula field, and prints
// the resulting rows in definition order.
func (a *App) Eval(ctx context.Context, tableName string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if a.cfg.RecordsPath == "" {
		return fmt.Errorf("eval requires a records file")
	}

	table, cfg, err := a.buildTable(ctx, tableName)
	if err != nil {
		return err
	}
	recs, err := records.Load(a.cfg.RecordsPath)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		if err := table.LoadRecord(ctx, rec); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s:\n", rec.ID)
		for _, f := range cfg.Fields {
			if fieldErr := table.FieldError(rec.ID, f.Name); fieldErr != nil {
				fmt.Fprintf(a.out, "  %s = #ERROR (%v)\n", f.Name, fieldErr)
				continue
			}
			val, ok := table.Value(rec.ID, f.Name)
			if !ok {
				fmt.Fprintf(a.out, "  %s =\n", f.Name)
				continue
			}
			fmt.Fprintf(a.out, "  %s = %s\n", f.Name, renderValue(val))
		}
	}
	return nil
}

// load reads the table definitions configured for this run.
func (a *App) load(ctx context.Context) (*config.Model, error) {
	return hcl.NewLoader().Load(ctx, a.cfg.TablesPath)
}

// buildTable loads the model and builds the runtime for the named table. An
// empty name selects the only table, failing when that is ambiguous.
func (a *App) buildTable(ctx context.Context, tableName string) (*engine.Table, *config.Table, error) {
	model, err := a.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	if tableName == "" {
		if len(model.Tables) != 1 {
			return nil, nil, fmt.Errorf("definitions contain %d tables; pass --table", len(model.Tables))
		}
		for name := range model.Tables {
			tableName = name
		}
	}

	cfg, ok := model.Tables[tableName]
	if !ok {
		return nil, nil, fmt.Errorf("no table named %q", tableName)
	}
	table, err := engine.NewTable(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return table, cfg, nil
}

// renderValue formats a cty value for row output.
func renderValue(val cty.Value) string {
	switch {
	case val.IsNull():
		return ""
	case val.Type() == cty.String:
		return val.AsString()
	case val.Type() == cty.Number:
		return val.AsBigFloat().Text('f', -1)
	case val.Type() == cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	default:
		return val.GoString()
	}
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

func sortedTableNames(model *config.Model) []string {
	names := make([]string, 0, len(model.Tables))
	for name := range model.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
