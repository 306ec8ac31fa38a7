package pipeline

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/exporter"
	"github.com/tatsukoohno1441/temutool/internal/importer"
	"github.com/tatsukoohno1441/temutool/internal/model"
	"github.com/tatsukoohno1441/temutool/internal/parser"
	"github.com/tatsukoohno1441/temutool/internal/shipping"
)

// ManifestOptions 发货清单流程选项
type ManifestOptions struct {
	PhonePrefix string
	Sequence    shipping.SequenceOptions
	Palette     exporter.Palette
}

// ManifestResult 发货清单流程结果
//
// Workbook 为 nil 表示带标记的工作簿生成失败（已记录 warn），CSV 仍然有效。
type ManifestResult struct {
	RunID       string
	CSV         []byte
	Workbook    []byte
	Rows        int
	MultiOrders int
	DroppedRows int
}

// BuildManifest 按装箱表明细的订单顺序重排原始数据，生成发货清单
func BuildManifest(originalName string, original, packing io.Reader, opts ManifestOptions, logger *zap.Logger) (*ManifestResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID), zap.String("original", originalName))

	table, err := importer.NewLoader(parser.DefaultAliases()).LoadNormalized(originalName, original)
	if err != nil {
		return nil, err
	}

	sequence, err := shipping.ExtractOrderSequence(packing, opts.Sequence, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("order sequence extracted", zap.Int("rows", len(table.Rows)), zap.Int("sequence", len(sequence)))

	manifest, err := shipping.NewBuilder(shipping.BuildOptions{PhonePrefix: opts.PhonePrefix}, logger).Build(table, sequence)
	if err != nil {
		return nil, err
	}

	csvData, err := exporter.ManifestCSV(manifest)
	if err != nil {
		return nil, fmt.Errorf("生成发货清单 CSV 失败: %w", err)
	}

	result := &ManifestResult{
		RunID:       runID,
		CSV:         csvData,
		Rows:        len(manifest.Rows),
		MultiOrders: len(manifest.MultiOrders),
		DroppedRows: manifest.DroppedRows,
	}

	wb, err := renderManifestWorkbook(manifest, opts.Palette)
	if err != nil {
		logger.Warn("annotated workbook skipped", zap.Error(err))
	} else {
		result.Workbook = wb
	}

	logger.Info("manifest built",
		zap.Int("rows", result.Rows),
		zap.Int("multi_orders", result.MultiOrders),
		zap.Int("dropped", result.DroppedRows))
	return result, nil
}

func renderManifestWorkbook(m *model.Manifest, palette exporter.Palette) ([]byte, error) {
	f, err := exporter.ManifestWorkbook(m, palette)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
