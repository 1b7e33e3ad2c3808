package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewChannelsCmd lists the board's category and channel tree.
func NewChannelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List categories and channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			categories, err := newGateway(cfg).FetchCategories(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, category := range categories {
				fmt.Fprintf(out, "%s\n", category.Name)
				for _, channel := range category.Channels {
					fmt.Fprintf(out, "  # %-20s %s\n", channel.Name, channel.ID)
				}
			}
			return nil
		},
	}
}
