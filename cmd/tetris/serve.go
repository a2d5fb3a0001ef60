package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var (
	flagSSHAddr     string
	flagHostKeyPath string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so players can connect and play.

Every connection gets its own game. Finished games are listed on a
scoreboard shared by all sessions until the server stops.

Connect with:
  ssh localhost -p 23234

Examples:
  tetris serve
  tetris serve --ssh :2222
  tetris serve --ssh 0.0.0.0:23234 --host-key /path/to/key`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Path to SSH host key (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	gameCfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	engineCfg := gameCfg.Engine()
	logger.Info("config loaded", "source", source, "board", fmt.Sprintf("%dx%d", engineCfg.Width, engineCfg.Height))

	store, err := storage.OpenMemory()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKeyPath
	cfg.IdleTimeout = flagIdleTimeout
	cfg.TickRate = flagFPS
	cfg.NewGame = gameFactory(engineCfg)

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Tetris SSH server starting on %s\n", server.Addr())
	fmt.Printf("Connect with: %s\n", connectHint(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// gameFactory returns a session game builder for engineCfg.
func gameFactory(engineCfg tetris.Config) func() (tui.Game, error) {
	return func() (tui.Game, error) {
		game, err := tetris.New(engineCfg)
		if err != nil {
			return nil, err
		}
		return game, nil
	}
}

// connectHint returns the ssh command line for a listen address.
func connectHint(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return "ssh localhost"
	}
	return "ssh localhost -p " + port
}
