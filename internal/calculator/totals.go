package calculator

import (
	"sort"

	"github.com/tatsukoohno1441/temutool/internal/model"
)

// BuildJANTotals 按 (JAN, 商品名) 汇总数量，与订单、收件人无关
//
// 排序：JAN 升序 → 数量降序 → 商品名升序。
func BuildJANTotals(lines []model.OrderLine) []model.JANTotal {
	type key struct{ jan, product string }

	index := make(map[key]int)
	totals := make([]model.JANTotal, 0)
	for _, l := range lines {
		k := key{l.JAN, l.Product}
		if i, ok := index[k]; ok {
			totals[i].Qty += l.Qty
			continue
		}
		index[k] = len(totals)
		totals = append(totals, model.JANTotal{JAN: l.JAN, Product: l.Product, Qty: l.Qty})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if a.JAN != b.JAN {
			return a.JAN < b.JAN
		}
		if a.Qty != b.Qty {
			return a.Qty > b.Qty
		}
		return a.Product < b.Product
	})
	return totals
}
