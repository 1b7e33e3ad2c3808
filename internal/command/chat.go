package command

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/openagora/agora/internal/chat"
	"github.com/openagora/agora/internal/realtime"
	"github.com/openagora/agora/internal/userdir"
)

// NewChatCmd creates the interactive board command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [channel-id]",
		Short: "Open the board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			wsURL, err := websocketURL(cfg)
			if err != nil {
				return err
			}
			live := realtime.NewClient(wsURL, cfg.Server.Token)
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			if err := live.Dial(ctx); err != nil {
				return err
			}
			defer live.Close()

			users, err := userdir.Open(userCachePath())
			if err == nil {
				defer users.Close()
			} else {
				users = nil // cache is an optimization, not a requirement
			}

			channel := ""
			if len(args) > 0 {
				channel = args[0]
			}
			return chat.Run(chat.Options{
				Config:  cfg,
				Gateway: newGateway(cfg),
				Live:    live,
				Users:   users,
				Channel: channel,
			})
		},
	}
	return cmd
}

func userCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "agora", "users.db")
	}
	return filepath.Join(os.TempDir(), "agora-users.db")
}
