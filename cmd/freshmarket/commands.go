package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/freshmarket/internal/bootstrap"
	"github.com/example/freshmarket/internal/config"
	"github.com/example/freshmarket/internal/repository"
)

// boot loads config and opens the seeded store. Maintenance commands run
// without the simulated latency.
func boot(ctx context.Context) (*bootstrap.Runtime, error) {
	cfg := config.Load()
	cfg.LatencyScale = 0
	return bootstrap.Boot(ctx, cfg)
}

// freshmarket seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the administrator and default catalog if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "administrator created: %t\n", rt.Seed.AdminCreated)
		fmt.Fprintf(out, "catalog seeded: %t\n", rt.Seed.CatalogSeeded)
		if len(rt.Seed.Patched) > 0 {
			fmt.Fprintf(out, "patched products: %v\n", rt.Seed.Patched)
		}
		return nil
	},
}

var resetYes bool

// freshmarket reset
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every collection and seed the store again",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}

		rt, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Repos.Settings.ResetDatabase(cmd.Context(), repository.SystemCaller); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "store reset to defaults")
		return nil
	},
}

// freshmarket stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print order and user totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		return printStats(cmd.Context(), cmd.OutOrStdout(), rt.Repos)
	},
}

// freshmarket users
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		return printUsers(cmd.Context(), cmd.OutOrStdout(), rt.Repos)
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
}

func printStats(ctx context.Context, out io.Writer, repos *repository.Repositories) error {
	stats, err := repos.Orders.Stats(ctx, repository.SystemCaller)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "users:    %d\n", repos.Users.Count(ctx))
	fmt.Fprintf(out, "orders:   %d (%d pending)\n", stats.TotalOrders, stats.PendingOrders)
	fmt.Fprintf(out, "revenue:  %.2f\n", stats.TotalRevenue)
	return nil
}

func printUsers(ctx context.Context, out io.Writer, repos *repository.Repositories) error {
	users, err := repos.Users.GetAll(ctx, repository.SystemCaller)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONTACT\tROLE\tJOINED")
	for _, u := range users {
		joined := time.UnixMilli(u.JoinedAt).UTC().Format("2006-01-02")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Contact, u.Role, joined)
	}
	return w.Flush()
}
