package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/punch-escape/internal/feed"
	"github.com/vovakirdan/punch-escape/internal/platform/tui"
)

func newServeCmd() *cobra.Command {
	var (
		sshAddr     string
		hostKey     string
		idleTimeout int
		configPath  string
		difficulty  string
		feedAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the SSH server",
		Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own silent game. Records are stored
per-server (all users share the same best score and run history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.escape/host_key

Examples:
  escape serve                           # Listen on :23235 with auto-generated key
  escape serve --ssh :2222               # Listen on port 2222
  escape serve --host-key ./my_host_key  # Use specific host key
  escape serve --feed :8088              # Stream every session's HUD

Users can connect with:
  ssh localhost -p 23235`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(os.Stderr, "escape-ssh")

			gameCfg, err := loadConfig(configPath, difficulty)
			if err != nil {
				return err
			}

			cfg := tui.DefaultSSHServerConfig()
			cfg.Address = sshAddr
			cfg.HostKeyPath = hostKey
			cfg.DBPath = flagDBPath
			cfg.IdleTimeout = time.Duration(idleTimeout) * time.Minute
			cfg.FPS = flagFPS
			cfg.Game = gameCfg

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if feedAddr != "" {
				hub := feed.NewHub(logger.WithPrefix("feed"))
				cfg.Notifier = hub
				go func() {
					if err := feed.Serve(ctx, feedAddr, hub); err != nil {
						logger.Error("feed stopped", "err", err)
					}
				}()
			}

			server, err := tui.NewSSHServer(cfg, logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			fmt.Printf("Starting escape SSH server on %s\n", cfg.Address)
			fmt.Println("Press Ctrl+C to stop")
			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&sshAddr, "ssh", envOr("ESCAPE_SSH", ":23235"), "SSH server address (host:port)")
	cmd.Flags().StringVar(&hostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	cmd.Flags().IntVar(&idleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	cmd.Flags().StringVar(&configPath, "config", envOr("ESCAPE_CONFIG", ""), "Path to custom game config YAML")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&feedAddr, "feed", envOr("ESCAPE_FEED", ""), "Serve the HUD feed on this address")
	return cmd
}
