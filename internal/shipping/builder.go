package shipping

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/model"
	"github.com/tatsukoohno1441/temutool/internal/parser"
)

// ErrMissingOrderIDColumn 原始数据缺少 order id 列
var ErrMissingOrderIDColumn = errors.New("original dataset missing 'order id' column")

// DefaultPhonePrefix 电话号码中要去掉的国际区号
const DefaultPhonePrefix = "+81"

// BuildOptions 发货清单构建选项
type BuildOptions struct {
	PhonePrefix string
}

// Builder 发货清单构建器
type Builder struct {
	opts   BuildOptions
	logger *zap.Logger
}

// NewBuilder 创建构建器
func NewBuilder(opts BuildOptions, logger *zap.Logger) *Builder {
	if opts.PhonePrefix == "" {
		opts.PhonePrefix = DefaultPhonePrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{opts: opts, logger: logger}
}

type manifestRow struct {
	cells   []string
	orderID string
	rank    int
	index   int
}

// Build 依次执行：电话规范化 → 地区补全 → 按装箱表顺序重排 → 多行订单去重
//
// table 的表头须已规范为长名；输入不会被修改。
func (b *Builder) Build(table *model.Table, sequence []string) (*model.Manifest, error) {
	orderCol := table.ColumnIndex(parser.HeaderOrderID)
	if orderCol < 0 {
		return nil, fmt.Errorf("%w; found: [%s]", ErrMissingOrderIDColumn, strings.Join(table.Headers, ", "))
	}

	t := table.Clone()
	b.normalizePhones(t)
	b.fillDistrict(t)

	rows := resequence(t, orderCol, sequence)
	kept, multi := dedupe(rows)

	m := &model.Manifest{
		Headers:       t.Headers,
		Rows:          make([][]string, 0, len(kept)),
		OrderIDColumn: orderCol,
		MultiOrders:   multi,
		DroppedRows:   len(rows) - len(kept),
	}
	for _, r := range kept {
		m.Rows = append(m.Rows, r.cells)
	}

	b.logger.Debug("manifest built",
		zap.Int("rows", len(rows)),
		zap.Int("kept", len(kept)),
		zap.Int("multi_orders", len(multi)))
	return m, nil
}

func (b *Builder) normalizePhones(t *model.Table) {
	col := t.ColumnIndex(parser.HeaderRecipientPhone)
	if col < 0 {
		return
	}
	for _, row := range t.Rows {
		row[col] = NormalizePhone(row[col], b.opts.PhonePrefix)
	}
}

func (b *Builder) fillDistrict(t *model.Table) {
	district := t.ColumnIndex(parser.HeaderDistrict)
	addr1 := t.ColumnIndex(parser.HeaderShipAddress1)
	if district < 0 || addr1 < 0 {
		return
	}
	for _, row := range t.Rows {
		if strings.TrimSpace(row[district]) == "" {
			row[district] = row[addr1]
		}
	}
}

// NormalizePhone 去掉所有国际区号，空白串替换为一个连字符
// 例："+81 90 1234 5678" → "90-1234-5678"
func NormalizePhone(v, prefix string) string {
	if prefix != "" {
		v = strings.ReplaceAll(v, prefix, "")
	}
	return strings.Join(strings.Fields(v), "-")
}

// resequence 按订单号在装箱表中第一次出现的位置排序；不在装箱表中的行排最后，保持原顺序
func resequence(t *model.Table, orderCol int, sequence []string) []manifestRow {
	present := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		present[strings.TrimSpace(row[orderCol])] = struct{}{}
	}

	rank := make(map[string]int)
	next := 0
	for _, oid := range sequence {
		if _, ok := present[oid]; !ok {
			continue
		}
		if _, seen := rank[oid]; !seen {
			rank[oid] = next
		}
		next++
	}
	unmatched := next

	rows := make([]manifestRow, len(t.Rows))
	for i, cells := range t.Rows {
		oid := strings.TrimSpace(cells[orderCol])
		r, ok := rank[oid]
		if !ok {
			r = unmatched
		}
		rows[i] = manifestRow{cells: cells, orderID: oid, rank: r, index: i}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].rank != rows[j].rank {
			return rows[i].rank < rows[j].rank
		}
		return rows[i].index < rows[j].index
	})
	return rows
}

// dedupe 出现多次的订单号只保留排序后的第一行；空订单号也按同一个订单号计数
func dedupe(rows []manifestRow) ([]manifestRow, map[string]struct{}) {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.orderID]++
	}

	multi := make(map[string]struct{})
	for oid, n := range counts {
		if n > 1 {
			multi[oid] = struct{}{}
		}
	}

	kept := make([]manifestRow, 0, len(rows))
	seen := make(map[string]struct{}, len(multi))
	for _, r := range rows {
		if _, ok := multi[r.orderID]; ok {
			if _, dup := seen[r.orderID]; dup {
				continue
			}
			seen[r.orderID] = struct{}{}
		}
		kept = append(kept, r)
	}
	return kept, multi
}
