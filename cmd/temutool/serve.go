package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/config"
	"github.com/tatsukoohno1441/temutool/internal/server"
	"github.com/tatsukoohno1441/temutool/internal/util"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port       int
		devMode    bool
		saveConfig bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动本地网页界面",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			// config.toml / 环境变量优先；仅当未显式配置 port 时命令行参数生效
			if port > 0 && !a.info.PortSpecified {
				a.cfg.Server.Port = port
			}
			if devMode {
				a.cfg.Server.DevMode = true
			}
			if saveConfig {
				path, err := config.SaveConfig(a.cfg)
				if err != nil {
					return fmt.Errorf("保存配置失败: %w", err)
				}
				a.logger.Info("config saved", zap.String("path", path))
			}
			return a.runServe()
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "服务端口")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式（不自动打开浏览器）")
	cmd.Flags().BoolVar(&saveConfig, "save-config", false, "启动前把当前生效的配置写入 config.toml")
	return cmd
}

func (a *app) runServe() error {
	srv := server.NewServer(a.cfg, a.logger)

	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", a.cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()

	if !a.cfg.Server.DevMode {
		if err := util.OpenBrowser(url); err != nil {
			a.logger.Warn("无法自动打开浏览器，请手动访问", zap.String("url", url))
		}
	} else {
		a.logger.Info("开发模式", zap.String("url", url))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-quit:
		a.logger.Info("正在关闭服务...")
		return nil
	}
}
