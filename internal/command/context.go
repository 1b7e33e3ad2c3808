package command

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openagora/agora/internal/config"
	"github.com/openagora/agora/internal/gateway"
)

// loadConfig resolves settings from the config file, the environment, and
// the persistent flags, in increasing priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.Server.BaseURL = server
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.Identity.Username = user
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newGateway(cfg *config.Config) *gateway.Client {
	return gateway.New(cfg.Server.BaseURL, cfg.Server.Token)
}

// websocketURL derives the feed endpoint from the base URL when the config
// does not pin one explicitly.
func websocketURL(cfg *config.Config) (string, error) {
	if cfg.Server.WSURL != "" {
		return cfg.Server.WSURL, nil
	}
	parsed, err := url.Parse(cfg.Server.BaseURL)
	if err != nil {
		return "", fmt.Errorf("derive websocket url: %w", err)
	}
	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	case "http":
		parsed.Scheme = "ws"
	default:
		return "", fmt.Errorf("derive websocket url: unsupported scheme %q", parsed.Scheme)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/feed"
	return parsed.String(), nil
}
