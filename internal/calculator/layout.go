package calculator

import (
	"sort"

	"github.com/tatsukoohno1441/temutool/internal/model"
)

// JANBlock 装箱表中一个 JAN 的单行订单块
type JANBlock struct {
	JAN     string
	Singles []model.DetailLine // 可能为空：该 JAN 只出现在多行订单里
}

// OrderBlock 多行订单块
type OrderBlock struct {
	OrderID string
	Lines   []model.DetailLine
}

// PackingLayout 装箱表的分块结构
type PackingLayout struct {
	JANBlocks   []JANBlock
	OrderBlocks []OrderBlock
}

// BuildPackingLayout 由已排序的明细生成装箱表布局
//
// JAN 块按明细中首次出现的顺序；多行订单按 (订单, 明细, JAN, 收件人, 商品) 排序后按订单分块。
func BuildPackingLayout(details []model.DetailLine) PackingLayout {
	var layout PackingLayout

	janIndex := make(map[string]int)
	for _, d := range details {
		i, ok := janIndex[d.JAN]
		if !ok {
			i = len(layout.JANBlocks)
			janIndex[d.JAN] = i
			layout.JANBlocks = append(layout.JANBlocks, JANBlock{JAN: d.JAN})
		}
		if d.IsSingle() {
			layout.JANBlocks[i].Singles = append(layout.JANBlocks[i].Singles, d)
		}
	}

	var multis []model.DetailLine
	for _, d := range details {
		if d.IsMultiLineOrder() {
			multis = append(multis, d)
		}
	}
	sort.SliceStable(multis, func(i, j int) bool {
		a, b := multis[i], multis[j]
		if a.OrderID != b.OrderID {
			return a.OrderID < b.OrderID
		}
		if a.OrderItemID != b.OrderItemID {
			return a.OrderItemID < b.OrderItemID
		}
		if a.JAN != b.JAN {
			return a.JAN < b.JAN
		}
		if a.Recipient != b.Recipient {
			return a.Recipient < b.Recipient
		}
		return a.Product < b.Product
	})

	for _, d := range multis {
		n := len(layout.OrderBlocks)
		if n == 0 || layout.OrderBlocks[n-1].OrderID != d.OrderID {
			layout.OrderBlocks = append(layout.OrderBlocks, OrderBlock{OrderID: d.OrderID})
			n++
		}
		layout.OrderBlocks[n-1].Lines = append(layout.OrderBlocks[n-1].Lines, d)
	}
	return layout
}
