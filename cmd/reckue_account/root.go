package main

import (
	"github.com/spf13/cobra"
)

// configFile 全局 --config 参数，为空时按默认路径查找
var configFile string

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reckue_account",
		Short:         "Account service: registration, login and token refresh",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (toml)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	return cmd
}
