package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/pipeline"
)

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report <input-file> [output-file]",
		Short: "生成装箱表（整理結果 + JAN合計）",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			path, err := a.runReport(args[0], output)
			if err != nil {
				a.logger.Error("report failed", zap.String("input", args[0]), zap.Error(err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// runReport 输出路径为空时写到输入文件旁边
func (a *app) runReport(input, output string) (string, error) {
	f, err := os.Open(input)
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := pipeline.BuildReport(filepath.Base(input), f, pipeline.ReportOptionsFromConfig(a.cfg), a.logger)
	if err != nil {
		return "", err
	}

	if output == "" {
		output = pipeline.DefaultReportPath(input, a.cfg.Report.OutputSuffix)
	}
	if err := os.WriteFile(output, res.Data, 0644); err != nil {
		return "", fmt.Errorf("写入 %s 失败: %w", output, err)
	}

	a.logger.Info("report written",
		zap.String("run_id", res.RunID),
		zap.String("output", output),
		zap.Int("detail_lines", res.DetailLines),
		zap.Int("multi_orders", res.MultiOrders))
	return output, nil
}
