package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Matiiass08/FTE-App/internal/config"
)

var force bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "写出当前生效的配置（含默认值）到 config.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgInfo.Path
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s 已存在，使用 --force 覆盖", path)
		}
		if err := config.SaveConfig(cfg, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已写入: %s\n", path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().BoolVar(&force, "force", false, "覆盖已有配置文件")
	rootCmd.AddCommand(initConfigCmd)
}
