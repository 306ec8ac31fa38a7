package pipeline

import (
	"strings"

	"github.com/tatsukoohno1441/temutool/internal/config"
	"github.com/tatsukoohno1441/temutool/internal/exporter"
)

// ReportOptionsFromConfig 由应用配置得到装箱表流程选项
func ReportOptionsFromConfig(cfg *config.AppConfig) ReportOptions {
	var opts ReportOptions
	if cfg == nil {
		return opts
	}
	opts.Packing.DetailSheet = cfg.Report.DetailSheet
	opts.Packing.TotalsSheet = cfg.Report.TotalsSheet
	return opts
}

// ManifestOptionsFromConfig 由应用配置得到发货清单流程选项
//
// 回读订单顺序时使用与装箱表相同的明细表名。
func ManifestOptionsFromConfig(cfg *config.AppConfig) ManifestOptions {
	var opts ManifestOptions
	if cfg == nil {
		return opts
	}
	palette := exporter.DefaultPalette()
	if c := strings.TrimPrefix(strings.TrimSpace(cfg.Manifest.HighlightColor), "#"); c != "" {
		palette.MultiOrderFill = strings.ToUpper(c)
	}
	opts.PhonePrefix = cfg.Manifest.PhonePrefix
	opts.Palette = palette
	opts.Sequence.Sheet = cfg.Report.DetailSheet
	return opts
}
