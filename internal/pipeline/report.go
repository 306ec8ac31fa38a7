package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/calculator"
	"github.com/tatsukoohno1441/temutool/internal/exporter"
	"github.com/tatsukoohno1441/temutool/internal/importer"
	"github.com/tatsukoohno1441/temutool/internal/parser"
)

// DefaultReportSuffix 装箱表默认文件名后缀
const DefaultReportSuffix = "_report"

// ReportOptions 装箱表流程选项
type ReportOptions struct {
	Packing exporter.PackingOptions
}

// ReportResult 装箱表流程结果
type ReportResult struct {
	RunID       string
	Data        []byte // xlsx 内容
	InputLines  int
	DetailLines int
	JANs        int
	MultiOrders int
}

// BuildReport 读取订单导出文件，生成装箱表工作簿（整理結果 + JAN合計）
func BuildReport(name string, r io.Reader, opts ReportOptions, logger *zap.Logger) (*ReportResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID), zap.String("input", name))

	lines, err := importer.NewLoader(parser.DefaultAliases()).LoadOrders(name, r)
	if err != nil {
		return nil, err
	}
	logger.Info("orders loaded", zap.Int("lines", len(lines)))

	details := calculator.BuildDetail(lines)
	totals := calculator.BuildJANTotals(lines)
	layout := calculator.BuildPackingLayout(details)

	f, err := exporter.NewPackingExporter(opts.Packing).Export(layout, totals)
	if err != nil {
		return nil, fmt.Errorf("生成装箱表失败: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("写入装箱表失败: %w", err)
	}

	logger.Info("packing workbook built",
		zap.Int("detail_lines", len(details)),
		zap.Int("jans", len(totals)),
		zap.Int("multi_orders", len(layout.OrderBlocks)))

	return &ReportResult{
		RunID:       runID,
		Data:        buf.Bytes(),
		InputLines:  len(lines),
		DetailLines: len(details),
		JANs:        len(totals),
		MultiOrders: len(layout.OrderBlocks),
	}, nil
}

// DefaultReportPath 输入文件去掉扩展名加后缀：orders.csv → orders_report.xlsx
func DefaultReportPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultReportSuffix
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ".xlsx"
}
