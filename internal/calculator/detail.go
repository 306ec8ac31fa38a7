package calculator

import (
	"sort"

	"github.com/tatsukoohno1441/temutool/internal/model"
)

type detailKey struct {
	jan         string
	orderID     string
	orderItemID string
	recipient   string
	product     string
}

type janOrderKey struct {
	jan     string
	orderID string
}

// BuildDetail 按 (JAN, 订单, 订单明细, 收件人, 商品) 合并数量，并统计订单内行数
//
// 相同键的多行数量相加；结果按五个键升序稳定排序。
func BuildDetail(lines []model.OrderLine) []model.DetailLine {
	index := make(map[detailKey]int, len(lines))
	details := make([]model.DetailLine, 0, len(lines))

	for _, l := range lines {
		key := detailKey{l.JAN, l.OrderID, l.OrderItemID, l.Recipient, l.Product}
		if i, ok := index[key]; ok {
			details[i].Qty += l.Qty
			continue
		}
		index[key] = len(details)
		details = append(details, model.DetailLine{
			JAN:         l.JAN,
			OrderID:     l.OrderID,
			OrderItemID: l.OrderItemID,
			Recipient:   l.Recipient,
			Product:     l.Product,
			Qty:         l.Qty,
		})
	}

	perOrder := make(map[string]int)
	perJANOrder := make(map[janOrderKey]int)
	for _, d := range details {
		perOrder[d.OrderID]++
		perJANOrder[janOrderKey{d.JAN, d.OrderID}]++
	}
	for i := range details {
		details[i].LinesInOrder = perOrder[details[i].OrderID]
		details[i].LinesInOrderForJAN = perJANOrder[janOrderKey{details[i].JAN, details[i].OrderID}]
	}

	sort.SliceStable(details, func(i, j int) bool {
		return lessDetail(details[i], details[j])
	})
	return details
}

func lessDetail(a, b model.DetailLine) bool {
	if a.JAN != b.JAN {
		return a.JAN < b.JAN
	}
	if a.OrderID != b.OrderID {
		return a.OrderID < b.OrderID
	}
	if a.OrderItemID != b.OrderItemID {
		return a.OrderItemID < b.OrderItemID
	}
	if a.Recipient != b.Recipient {
		return a.Recipient < b.Recipient
	}
	return a.Product < b.Product
}
