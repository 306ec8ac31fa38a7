package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tatsukoohno1441/temutool/internal/calculator"
	"github.com/tatsukoohno1441/temutool/internal/model"
)

// recordingSink 记录写入内容，便于断言布局
type recordingSink struct {
	rows   [][]interface{}
	marks  map[int]RowStyle
	widths map[int]float64
}

func newRecordingSink() *recordingSink {
	return &recordingSink{marks: map[int]RowStyle{}, widths: map[int]float64{}}
}

func (s *recordingSink) AppendRow(values ...interface{}) error {
	s.rows = append(s.rows, values)
	return nil
}

func (s *recordingSink) MarkRow(style RowStyle) error {
	s.marks[len(s.rows)-1] = style
	return nil
}

func (s *recordingSink) SetColumnWidth(col int, width float64) error {
	s.widths[col] = width
	return nil
}

func sampleLayout() calculator.PackingLayout {
	lines := []model.OrderLine{
		{JAN: "A", OrderID: "1", OrderItemID: "1", Recipient: "X", Product: "P1", Qty: 2},
		{JAN: "A", OrderID: "5", OrderItemID: "1", Recipient: "V", Product: "P1", Qty: 1},
		{JAN: "B", OrderID: "3", OrderItemID: "1", Recipient: "Z", Product: "P2", Qty: 1},
		{JAN: "A", OrderID: "2", OrderItemID: "1", Recipient: "Y", Product: "P1", Qty: 1},
		{JAN: "B", OrderID: "2", OrderItemID: "2", Recipient: "Y", Product: "P2", Qty: 3},
		{JAN: "C", OrderID: "4", OrderItemID: "1", Recipient: "W", Product: "P3", Qty: 1},
		{JAN: "C", OrderID: "4", OrderItemID: "2", Recipient: "W", Product: "P3b", Qty: 1},
	}
	return calculator.BuildPackingLayout(calculator.BuildDetail(lines))
}

func firstCells(rows [][]interface{}) []interface{} {
	out := make([]interface{}, len(rows))
	for i, r := range rows {
		if len(r) > 0 {
			out[i] = r[0]
		}
	}
	return out
}

func TestRenderDetail_Layout(t *testing.T) {
	t.Parallel()

	sink := newRecordingSink()
	require.NoError(t, RenderDetail(sink, sampleLayout()))

	assert.Equal(t, []interface{}{
		DetailOrderIDHeader,
		"1", "5", nil, // JAN A
		"3", nil, // JAN B；JAN C 只有多行订单，没有行
		nil, multiOrderSeparator,
		"2", "2", nil,
		"4", "4",
	}, firstCells(sink.rows))

	assert.Equal(t, StyleHeader, sink.marks[0])
	assert.Equal(t, StyleQtyAlert, sink.marks[1]) // 订单 1 数量 2
	assert.Equal(t, StyleSeparator, sink.marks[7])
	assert.Equal(t, StyleQtyAlert, sink.marks[9]) // 多行订单里的数量 3 也标记
	assert.Len(t, sink.marks, 4)
	assert.Equal(t, 36.0, sink.widths[5])
}

func TestRenderTotals(t *testing.T) {
	t.Parallel()

	sink := newRecordingSink()
	require.NoError(t, RenderTotals(sink, []model.JANTotal{{JAN: "A", Product: "P1", Qty: 4}}))
	require.Len(t, sink.rows, 2)
	assert.Equal(t, []interface{}{"A", "P1", 4}, sink.rows[1])
	assert.Equal(t, StyleHeader, sink.marks[0])
}

func TestPackingExporter_Workbook(t *testing.T) {
	t.Parallel()

	f, err := NewPackingExporter(PackingOptions{}).Export(sampleLayout(), []model.JANTotal{{JAN: "A", Product: "P1", Qty: 4}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{DefaultDetailSheet, DefaultTotalsSheet}, f.GetSheetList())

	rows, err := f.GetRows(DefaultDetailSheet)
	require.NoError(t, err)
	assert.Equal(t, DetailOrderIDHeader, rows[0][0])
	assert.Equal(t, []string{"1", "1", "X", "A", "P1", "2"}, rows[1])
	assert.Empty(t, rows[3])

	headerStyle, err := f.GetCellStyle(DefaultDetailSheet, "F1")
	require.NoError(t, err)
	alertStyle, err := f.GetCellStyle(DefaultDetailSheet, "A2")
	require.NoError(t, err)
	plainStyle, err := f.GetCellStyle(DefaultDetailSheet, "A3")
	require.NoError(t, err)
	assert.NotZero(t, headerStyle)
	assert.NotZero(t, alertStyle)
	assert.NotEqual(t, headerStyle, alertStyle)
	assert.Zero(t, plainStyle)

	width, err := f.GetColWidth(DefaultDetailSheet, "E")
	require.NoError(t, err)
	assert.Equal(t, 36.0, width)

	totals, err := f.GetRows(DefaultTotalsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"JANコード", "商品名", "合計数量"}, {"A", "P1", "4"}}, totals)
}

func TestPackingExporter_Deterministic(t *testing.T) {
	t.Parallel()

	render := func() []byte {
		f, err := NewPackingExporter(PackingOptions{}).Export(sampleLayout(), nil)
		require.NoError(t, err)
		defer f.Close()
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)
		return buf.Bytes()
	}

	f1, err := excelize.OpenReader(bytes.NewReader(render()))
	require.NoError(t, err)
	defer f1.Close()
	f2, err := excelize.OpenReader(bytes.NewReader(render()))
	require.NoError(t, err)
	defer f2.Close()

	r1, err := f1.GetRows(DefaultDetailSheet)
	require.NoError(t, err)
	r2, err := f2.GetRows(DefaultDetailSheet)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
