package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tatsukoohno1441/temutool/internal/calculator"
	"github.com/tatsukoohno1441/temutool/internal/model"
)

const (
	DefaultDetailSheet = "整理結果"
	DefaultTotalsSheet = "JAN合計"

	// DetailOrderIDHeader 发货清单流程按此列名回读订单顺序
	DetailOrderIDHeader = "受注番号/Order ID"

	multiOrderSeparator = "-- 複数行の注文（全体） --"
)

var (
	detailHeaders = []interface{}{DetailOrderIDHeader, "Order item ID", "宛先名/Recipient", "JANコード/JAN", "商品名/Product", "出荷個数/Qty to ship"}
	detailWidths  = []float64{18, 18, 20, 18, 36, 10}

	totalsHeaders = []interface{}{"JANコード", "商品名", "合計数量"}
	totalsWidths  = []float64{18, 36, 12}
)

// PackingOptions 装箱表输出选项
type PackingOptions struct {
	DetailSheet string
	TotalsSheet string
	Palette     Palette
}

// PackingExporter 装箱表（工作簿 A）导出器
type PackingExporter struct {
	opts PackingOptions
}

// NewPackingExporter 创建导出器，未设置的选项取默认值
func NewPackingExporter(opts PackingOptions) *PackingExporter {
	if opts.DetailSheet == "" {
		opts.DetailSheet = DefaultDetailSheet
	}
	if opts.TotalsSheet == "" {
		opts.TotalsSheet = DefaultTotalsSheet
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette()
	}
	return &PackingExporter{opts: opts}
}

// Export 生成两张表的工作簿：明细（按 JAN 分块 + 多行订单块）与 JAN 合计
func (e *PackingExporter) Export(layout calculator.PackingLayout, totals []model.JANTotal) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", e.opts.DetailSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(e.opts.TotalsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	detail := newSheetSink(f, e.opts.DetailSheet, len(detailHeaders), e.opts.Palette)
	if err := RenderDetail(detail, layout); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", e.opts.DetailSheet, err)
	}

	sum := newSheetSink(f, e.opts.TotalsSheet, len(totalsHeaders), e.opts.Palette)
	if err := RenderTotals(sum, totals); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", e.opts.TotalsSheet, err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// RenderDetail 写入明细表
//
// 每个 JAN 的单行订单后空一行（最后一个 JAN 除外）；存在多行订单时，
// 再空一行、写分隔行，然后逐订单写出，订单之间空一行。
func RenderDetail(sink RowSink, layout calculator.PackingLayout) error {
	if err := sink.AppendRow(detailHeaders...); err != nil {
		return err
	}
	if err := sink.MarkRow(StyleHeader); err != nil {
		return err
	}

	for i, block := range layout.JANBlocks {
		for _, d := range block.Singles {
			if err := appendDetailLine(sink, d); err != nil {
				return err
			}
		}
		if i != len(layout.JANBlocks)-1 {
			if err := sink.AppendRow(); err != nil {
				return err
			}
		}
	}

	if len(layout.OrderBlocks) > 0 {
		if err := sink.AppendRow(); err != nil {
			return err
		}
		if err := sink.AppendRow(multiOrderSeparator); err != nil {
			return err
		}
		if err := sink.MarkRow(StyleSeparator); err != nil {
			return err
		}
		for i, block := range layout.OrderBlocks {
			if i > 0 {
				if err := sink.AppendRow(); err != nil {
					return err
				}
			}
			for _, d := range block.Lines {
				if err := appendDetailLine(sink, d); err != nil {
					return err
				}
			}
		}
	}

	return setWidths(sink, detailWidths)
}

// RenderTotals 写入 JAN 合计表
func RenderTotals(sink RowSink, totals []model.JANTotal) error {
	if err := sink.AppendRow(totalsHeaders...); err != nil {
		return err
	}
	if err := sink.MarkRow(StyleHeader); err != nil {
		return err
	}
	for _, t := range totals {
		if err := sink.AppendRow(t.JAN, t.Product, t.Qty); err != nil {
			return err
		}
	}
	return setWidths(sink, totalsWidths)
}

func appendDetailLine(sink RowSink, d model.DetailLine) error {
	if err := sink.AppendRow(d.OrderID, d.OrderItemID, d.Recipient, d.JAN, d.Product, d.Qty); err != nil {
		return err
	}
	if d.Qty > 1 {
		return sink.MarkRow(StyleQtyAlert)
	}
	return nil
}

func setWidths(sink RowSink, widths []float64) error {
	for i, w := range widths {
		if err := sink.SetColumnWidth(i+1, w); err != nil {
			return err
		}
	}
	return nil
}
