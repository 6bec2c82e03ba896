package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/logging"
)

var (
	// Version 构建时通过 ldflags 注入
	Version = "dev"

	verbose    bool
	configPath string
	cfg        *config.AppConfig
	cfgInfo    config.LoadConfigInfo
)

var rootCmd = &cobra.Command{
	Use:   "fteapp",
	Short: "FTE 人力测算工具",
	Long: `根据工单明细、工单类型权重与出勤天数测算各月所需 FTE 与人数，
可作为本地 Web 服务运行，也可按子命令批量导出 Excel 报表。`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, info, err := config.LoadConfigWithInfo(configPath)
		if err != nil {
			return err
		}
		cfg, cfgInfo = loaded, info

		logging.Init(logging.Options{
			Verbose: verbose || cfg.Log.Verbose,
			Dir:     config.LogDir(cfg),
		})

		// JSON 中的分值按数字输出
		decimal.MarshalJSONWithoutQuotes = true

		log.Debug().
			Str("version", Version).
			Str("config", info.Path).
			Msg("fteapp starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认为可执行文件同目录下的 config.toml）")
}
