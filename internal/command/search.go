package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewSearchCmd runs a one-shot board search from the shell.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search channels and messages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if len(query) < 2 {
				return fmt.Errorf("query must be at least two characters")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			result, err := newGateway(cfg).SearchBoard(ctx, query, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, channel := range result.Channels {
				fmt.Fprintf(out, "channel  # %s\n", channel.Name)
			}
			for _, category := range result.Categories {
				fmt.Fprintf(out, "category %s\n", category.Name)
			}
			for _, message := range result.Messages {
				author := message.AuthorID
				if message.Author != nil {
					author = message.Author.Username
				}
				content := message.Content
				if i := strings.IndexByte(content, '\n'); i >= 0 {
					content = content[:i]
				}
				fmt.Fprintf(out, "message  @%s: %s\n", author, content)
			}
			if len(result.Channels)+len(result.Categories)+len(result.Messages) == 0 {
				fmt.Fprintln(out, "no results")
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum results per section")
	return cmd
}
