package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/server"
	"github.com/Matiiass08/FTE-App/internal/service/store"
	"github.com/Matiiass08/FTE-App/internal/service/workflow"
	"github.com/Matiiass08/FTE-App/internal/util"
)

var (
	port      int
	devMode   bool
	noBrowser bool
	dataDir   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动本地 Web 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	serveCmd.Flags().BoolVar(&devMode, "dev", false, "开发模式")
	serveCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "不自动打开浏览器")
	serveCmd.Flags().StringVar(&dataDir, "data-dir", "", "数据目录 (覆盖配置文件)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if port > 0 && !cfgInfo.PortSpecified {
		cfg.Server.Port = port
	}
	if devMode {
		cfg.Server.DevMode = true
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("create data directory failed")
	} else {
		log.Info().Str("dir", dir).Msg("data directory ready")
	}

	runner := workflow.NewRunner(cfg, store.NewMemoryStore())
	srv := server.NewServer(cfg, runner)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server listening")
		errCh <- srv.Run(addr)
	}()

	if !cfg.Server.DevMode && !noBrowser {
		log.Info().Str("url", url).Msg("opening browser")
		if err := util.OpenBrowserWithFallback(url); err != nil {
			log.Warn().Err(err).Msgf("无法自动打开浏览器，请手动访问: %s", url)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		return nil
	}
}
