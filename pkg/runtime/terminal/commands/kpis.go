package commands

import (
	"context"
	"time"

	"github.com/de-tools/irevolution/pkg/dashboard/kpi"
	"github.com/de-tools/irevolution/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type KPIsCmd struct {
	env     *Env
	timeout time.Duration
}

func NewKPIsCmd(env *Env) *cobra.Command {
	kc := &KPIsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Show the key metrics of the dataset",
		RunE:  kc.run,
	}

	cmd.Flags().DurationVar(&kc.timeout, "timeout", 30*time.Second, "Maximum time for the request and the counters")

	return cmd
}

// run prints the counters after they reached their targets. When the API
// is unavailable the defaults are shown instead.
func (kc *KPIsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), kc.timeout)
	defer cancel()

	cfg := kc.env.Config
	view := export.NewConsoleView(kc.env.Reporter)
	loader := kpi.NewLoader(kc.env.source(), view,
		kpi.WithAnimation(kpi.Animation{Interval: cfg.Animation.Interval, Steps: cfg.Animation.Steps}),
		kpi.WithDefaults(kpi.DefaultTargets()),
	)

	loader.Load(ctx)

	// the report is always fully visible
	loader.Trigger(ctx, cfg.Animation.Threshold).Observe(1)
	if err := waitCounters(ctx, loader.Done()); err != nil {
		return err
	}

	return view.FlushKPIs()
}
