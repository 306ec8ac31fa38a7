package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"

	"github.com/tatsukoohno1441/temutool/internal/model"
	"github.com/tatsukoohno1441/temutool/internal/parser"
)

const englishCSV = "Order ID,Order item ID,Recipient name,Contribution SKU,Product name by customer order,Quantity to ship\n" +
	"PO-1,I-1,Sato,4901,Soap,\"1,200\"\n" +
	"PO-2,I-2,Suzuki,4902,Towel,abc\n" +
	",,,,,\n" +
	"PO-3,I-3,Tanaka,4903,Cup,2\n"

func TestLoadOrders_CSV(t *testing.T) {
	t.Parallel()

	l := NewLoader(parser.DefaultAliases())
	lines, err := l.LoadOrders("orders.csv", strings.NewReader(englishCSV))
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, model.OrderLine{OrderID: "PO-1", OrderItemID: "I-1", Recipient: "Sato", JAN: "4901", Product: "Soap", Qty: 1200}, lines[0])
	assert.Equal(t, 0, lines[1].Qty)
	// 只有分隔符的行保留为空行
	assert.Equal(t, model.OrderLine{}, lines[2])
	assert.Equal(t, "PO-3", lines[3].OrderID)
}

func TestLoadOrders_BOMAndShiftJIS(t *testing.T) {
	t.Parallel()

	src := "注文ID,注文商品ID,受取人名,貢献SKU,顧客注文による製品名,出荷数量\nPO-1,I-1,佐藤,4901,石けん,3\n"
	l := NewLoader(parser.DefaultAliases())

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		lines, err := l.LoadOrders("a.csv", strings.NewReader("\xEF\xBB\xBF"+src))
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "佐藤", lines[0].Recipient)
	})

	t.Run("Shift_JIS is decoded", func(t *testing.T) {
		sjis, err := japanese.ShiftJIS.NewEncoder().String(src)
		require.NoError(t, err)

		lines, err := l.LoadOrders("a.csv", strings.NewReader(sjis))
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "石けん", lines[0].Product)
		assert.Equal(t, 3, lines[0].Qty)
	})
}

func TestLoadOrders_TSV(t *testing.T) {
	t.Parallel()

	src := strings.ReplaceAll(englishCSV, ",", "\t")
	src = strings.ReplaceAll(src, "\"1\t200\"", "1200")
	lines, err := NewLoader(parser.DefaultAliases()).LoadOrders("orders.tsv", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, 1200, lines[0].Qty)
}

func TestLoadOrders_Workbook(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	rows := [][]interface{}{
		{"注文ID", "注文商品ID", "受取人名", "貢献SKU", "顧客注文による製品名", "出荷数量"},
		{"PO-1", "I-1", "佐藤", "4901234567890", "石けん", 2},
		{},
		{"PO-2", "I-2", "鈴木", "4901234567891", "タオル", "1,000"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	lines, err := NewLoader(parser.DefaultAliases()).LoadOrders("orders.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "4901234567890", lines[0].JAN)
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, 1000, lines[1].Qty)
}

func TestLoadOrders_MissingHeaders(t *testing.T) {
	t.Parallel()

	src := "Order ID,Recipient name\nPO-1,Sato\n"
	_, err := NewLoader(parser.DefaultAliases()).LoadOrders("bad.csv", strings.NewReader(src))

	var missing *parser.MissingHeadersError
	require.True(t, errors.As(err, &missing), "err=%v", err)
	assert.Contains(t, missing.Missing, parser.HeaderSKU)
	assert.Equal(t, []string{"Order ID", "Recipient name"}, missing.Found)
}

func TestReadTable_EmptyFile(t *testing.T) {
	t.Parallel()

	_, err := ReadTable("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadNormalized_KeepsCellsVerbatim(t *testing.T) {
	t.Parallel()

	src := "注文ID, Recipient Phone Number ,Memo\nPO-1,+81 90 1234 5678,  keep  \n"
	table, err := NewLoader(parser.DefaultAliases()).LoadNormalized("m.csv", strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"order id", "recipient phone number", "memo"}, table.Headers)
	assert.Equal(t, []string{"PO-1", "+81 90 1234 5678", "  keep  "}, table.Rows[0])
}

func TestLoadOrders_KeepsCellsVerbatim(t *testing.T) {
	t.Parallel()

	src := englishCSV[:strings.Index(englishCSV, "\n")+1] +
		"PO-1 ,I-1,Sato,4901,Soap,1\n" +
		"PO-1,I-2,Sato,4901,Soap, 2 \n"
	lines, err := NewLoader(parser.DefaultAliases()).LoadOrders("orders.csv", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// "PO-1 " 与 "PO-1" 是两个订单
	assert.Equal(t, "PO-1 ", lines[0].OrderID)
	assert.Equal(t, "PO-1", lines[1].OrderID)
	assert.Equal(t, 2, lines[1].Qty)
}

func TestReadTable_SkipsOnlyEmptyLines(t *testing.T) {
	t.Parallel()

	table, err := ReadTable("t.csv", strings.NewReader("a,b\n\n1,2\n,\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"", ""}}, table.Rows)

	_, err = ReadTable("t.csv", strings.NewReader(",,\n1,2,3\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}
