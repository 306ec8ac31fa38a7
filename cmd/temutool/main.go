package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/config"
	"github.com/tatsukoohno1441/temutool/internal/logger"
)

// app 子命令共享的配置与日志
type app struct {
	cfg    *config.AppConfig
	info   config.LoadConfigInfo
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "temutool",
		Short: "Temu 订单导出 → 装箱表 / 发货清单",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.AddCommand(newReportCmd(a), newManifestCmd(a), newServeCmd(a))
	return cmd
}

func (a *app) init() error {
	cfg, info, err := config.LoadConfigWithInfo()
	loadErr := err
	if err != nil {
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	a.cfg = cfg
	a.info = info
	a.logger = logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})

	if loadErr != nil {
		a.logger.Warn("加载配置失败，使用默认配置", zap.String("path", info.Path), zap.Error(loadErr))
	} else if info.FromFile {
		a.logger.Debug("config loaded", zap.String("path", info.Path))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
