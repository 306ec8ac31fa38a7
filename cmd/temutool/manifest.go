package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/exporter"
	"github.com/tatsukoohno1441/temutool/internal/pipeline"
)

func newManifestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest <original-dataset> <packing-workbook> <output-file>",
		Short: "按装箱表顺序生成发货清单 CSV",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			written, err := a.runManifest(args[0], args[1], args[2])
			if err != nil {
				a.logger.Error("manifest failed", zap.String("original", args[0]), zap.Error(err))
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

// runManifest 返回实际写出的文件；带标记的工作簿写失败只记 warn
func (a *app) runManifest(originalPath, packingPath, output string) ([]string, error) {
	original, err := os.Open(originalPath)
	if err != nil {
		return nil, err
	}
	defer original.Close()

	packing, err := os.Open(packingPath)
	if err != nil {
		return nil, err
	}
	defer packing.Close()

	res, err := pipeline.BuildManifest(filepath.Base(originalPath), original, packing,
		pipeline.ManifestOptionsFromConfig(a.cfg), a.logger)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, res.CSV, 0644); err != nil {
		return nil, fmt.Errorf("写入 %s 失败: %w", output, err)
	}
	written := []string{output}

	if res.Workbook != nil {
		formatted := exporter.FormattedPath(output, a.cfg.Manifest.FormattedSuffix)
		if err := os.WriteFile(formatted, res.Workbook, 0644); err != nil {
			a.logger.Warn("annotated workbook not written", zap.String("path", formatted), zap.Error(err))
		} else {
			written = append(written, formatted)
		}
	}

	a.logger.Info("manifest written",
		zap.String("run_id", res.RunID),
		zap.String("output", output),
		zap.Int("rows", res.Rows),
		zap.Int("multi_orders", res.MultiOrders))
	return written, nil
}
