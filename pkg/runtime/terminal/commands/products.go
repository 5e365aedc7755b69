package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/irevolution/pkg/dashboard/products"
	"github.com/de-tools/irevolution/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type ProductsCmd struct {
	env     *Env
	search  string
	timeout time.Duration
}

func NewProductsCmd(env *Env) *cobra.Command {
	pc := &ProductsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the products, optionally filtered by name",
		RunE:  pc.run,
	}

	cmd.Flags().StringVarP(&pc.search, "search", "s", "", "Case-insensitive filter on the product name")
	cmd.Flags().DurationVar(&pc.timeout, "timeout", 30*time.Second, "Maximum time for the request")

	return cmd
}

func (pc *ProductsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), pc.timeout)
	defer cancel()

	view := export.NewConsoleView(pc.env.Reporter)
	loader := products.NewLoader(pc.env.source(), view,
		products.WithFormatter(products.NewFormatter(pc.env.Config.Display.Locale)),
	)

	if result := loader.Load(ctx); !result.OK() {
		return fmt.Errorf("failed to load products: %w", result.Err)
	}

	if pc.search != "" {
		loader.Search(pc.search)
		view.SetQuery(pc.search)
	}

	return view.FlushProducts()
}
