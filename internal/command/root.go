package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "agora"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Agora - terminal client for community boards",
		Long:          "Agora is a terminal client for hosted community boards: live channels, threads, reactions, and mentions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", "", "path to config file")
	cmd.PersistentFlags().String("server", "", "board service base URL (overrides config)")
	cmd.PersistentFlags().String("user", "", "username to connect as (overrides config)")

	cmd.AddCommand(
		NewChatCmd(),
		NewChannelsCmd(),
		NewSearchCmd(),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
