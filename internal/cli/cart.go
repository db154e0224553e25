package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	cartapp "github.com/greencart/storefront/internal/cart/app"
)

// NewCartCommand creates the cart command group. These commands work
// directly against the local store, no backend required.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit the locally persisted cart",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show cart contents",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCart(cmd, rootOpts, func(env *cartEnv) error {
					items := env.cart.Snapshot()
					ids := make([]string, 0, len(items))
					for id := range items {
						ids = append(ids, id)
					}
					sort.Strings(ids)
					for _, id := range ids {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", id, items[id])
					}
					fmt.Fprintf(cmd.OutOrStdout(), "total items: %d\n", env.cart.Count())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCart(cmd, rootOpts, func(env *cartEnv) error {
					env.cart.Add(cmd.Context(), args[0])
					fmt.Fprintf(cmd.OutOrStdout(), "added %s, total items: %d\n", args[0], env.cart.Count())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Remove one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCart(cmd, rootOpts, func(env *cartEnv) error {
					env.cart.Remove(cmd.Context(), args[0])
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s, total items: %d\n", args[0], env.cart.Count())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <product-id> <quantity>",
			Short: "Set the quantity of a product (0 removes it)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := cartapp.ParseQuantity(args[1])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[1])
				}
				return withCart(cmd, rootOpts, func(env *cartEnv) error {
					env.cart.SetQuantity(cmd.Context(), args[0], qty)
					fmt.Fprintf(cmd.OutOrStdout(), "set %s to %d, total items: %d\n", args[0], qty, env.cart.Count())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCart(cmd, rootOpts, func(env *cartEnv) error {
					env.cart.Clear(cmd.Context())
					fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
					return nil
				})
			},
		},
	)

	return cmd
}

func withCart(cmd *cobra.Command, rootOpts *RootOptions, fn func(*cartEnv) error) error {
	env, err := newCartEnv(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	return runWithEnv(env, fn)
}

// runWithEnv runs fn and closes the store afterwards. A close failure is
// reported unless fn already failed; the command's error takes precedence.
func runWithEnv(env *cartEnv, fn func(*cartEnv) error) (err error) {
	defer func() {
		if cerr := env.close(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(env)
}
