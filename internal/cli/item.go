package cli

import (
	"github.com/spf13/cobra"
)

func newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Item catalog commands",
	}

	cmd.AddCommand(newItemListCmd())

	return cmd
}

func newItemListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the item catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ItemList

			if err := client.Get("/api/v1/items", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
