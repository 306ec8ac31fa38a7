package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatsukoohno1441/temutool/internal/model"
)

func line(jan, order, item, recip, prod string, qty int) model.OrderLine {
	return model.OrderLine{JAN: jan, OrderID: order, OrderItemID: item, Recipient: recip, Product: prod, Qty: qty}
}

func sampleLines() []model.OrderLine {
	return []model.OrderLine{
		line("B", "3", "1", "Z", "P2", 1),
		line("A", "1", "1", "X", "P1", 2),
		line("A", "2", "1", "Y", "P1", 1),
		line("A", "1", "1", "X", "P1", 3),
		line("B", "2", "2", "Y", "P2", 4),
		line("A", "2", "3", "Y", "P1", 1),
		line("C", "4", "1", "W", "P3", 0),
	}
}

func TestBuildDetail_MergesDuplicateKeys(t *testing.T) {
	t.Parallel()

	details := BuildDetail([]model.OrderLine{
		line("A", "1", "1", "X", "P1", 2),
		line("A", "1", "1", "X", "P1", 3),
	})
	require.Len(t, details, 1)
	assert.Equal(t, 5, details[0].Qty)
	assert.Equal(t, 1, details[0].LinesInOrder)
	assert.Equal(t, 1, details[0].LinesInOrderForJAN)
}

func TestBuildDetail_PreservesTotalQty(t *testing.T) {
	t.Parallel()

	lines := sampleLines()
	want := 0
	for _, l := range lines {
		want += l.Qty
	}
	got := 0
	for _, d := range BuildDetail(lines) {
		got += d.Qty
	}
	assert.Equal(t, want, got)
}

func TestBuildDetail_Counts(t *testing.T) {
	t.Parallel()

	details := BuildDetail(sampleLines())
	require.Len(t, details, 6)

	byKey := map[string]model.DetailLine{}
	for _, d := range details {
		assert.LessOrEqual(t, d.LinesInOrderForJAN, d.LinesInOrder)
		byKey[d.JAN+"/"+d.OrderID+"/"+d.OrderItemID] = d
	}

	// 订单 2：A 两行 + B 一行
	assert.Equal(t, 3, byKey["A/2/1"].LinesInOrder)
	assert.Equal(t, 2, byKey["A/2/1"].LinesInOrderForJAN)
	assert.Equal(t, 3, byKey["B/2/2"].LinesInOrder)
	assert.Equal(t, 1, byKey["B/2/2"].LinesInOrderForJAN)
	assert.True(t, byKey["A/1/1"].IsSingle())
	assert.True(t, byKey["B/3/1"].IsSingle())
}

func TestBuildDetail_SortedAndDeterministic(t *testing.T) {
	t.Parallel()

	first := BuildDetail(sampleLines())
	second := BuildDetail(sampleLines())
	assert.Equal(t, first, second)

	var got []string
	for _, d := range first {
		got = append(got, d.JAN+d.OrderID+d.OrderItemID)
	}
	assert.Equal(t, []string{"A11", "A21", "A23", "B22", "B31", "C41"}, got)
}

func TestBuildJANTotals_Ordering(t *testing.T) {
	t.Parallel()

	totals := BuildJANTotals([]model.OrderLine{
		line("B", "1", "1", "X", "small", 1),
		line("A", "1", "1", "X", "zeta", 2),
		line("A", "2", "1", "Y", "alpha", 2),
		line("A", "3", "1", "Z", "big", 5),
		line("A", "4", "1", "Z", "alpha", 1),
	})

	assert.Equal(t, []model.JANTotal{
		{JAN: "A", Product: "big", Qty: 5},
		{JAN: "A", Product: "alpha", Qty: 3},
		{JAN: "A", Product: "zeta", Qty: 2},
		{JAN: "B", Product: "small", Qty: 1},
	}, totals)
}
