package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/irevolution/pkg/dashboard"
	"github.com/de-tools/irevolution/pkg/dashboard/kpi"
	"github.com/de-tools/irevolution/pkg/runtime/terminal/export"
	"github.com/de-tools/irevolution/pkg/runtime/tui"
	"github.com/spf13/cobra"
)

type DashboardCmd struct {
	env     *Env
	plain   bool
	timeout time.Duration
}

func NewDashboardCmd(env *Env) *cobra.Command {
	dc := &DashboardCmd{env: env}
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		RunE:  dc.run,
	}

	cmd.Flags().BoolVar(&dc.plain, "plain", false, "Print both panels once instead of opening the interactive view")
	cmd.Flags().DurationVar(&dc.timeout, "timeout", 30*time.Second, "Maximum time for the plain report")

	return cmd
}

func (dc *DashboardCmd) options() dashboard.Options {
	cfg := dc.env.Config
	return dashboard.Options{
		Source:    dc.env.source(),
		Locale:    cfg.Display.Locale,
		Animation: kpi.Animation{Interval: cfg.Animation.Interval, Steps: cfg.Animation.Steps},
		Threshold: cfg.Animation.Threshold,
	}
}

func (dc *DashboardCmd) run(cmd *cobra.Command, _ []string) error {
	if !dc.plain {
		return tui.Run(cmd.Context(), dc.options())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), dc.timeout)
	defer cancel()

	view := export.NewConsoleView(dc.env.Reporter)
	opts := dc.options()
	opts.View = view
	d := dashboard.New(opts)

	results := d.Load(ctx)
	d.Trigger(ctx).Observe(1)
	if err := waitCounters(ctx, d.KPIs.Done()); err != nil {
		return err
	}

	if err := view.FlushKPIs(); err != nil {
		return err
	}
	if !results.Products.OK() {
		return fmt.Errorf("failed to load products: %w", results.Products.Err)
	}
	return view.FlushProducts()
}
