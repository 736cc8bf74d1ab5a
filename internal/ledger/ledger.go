// Package ledger 实现轮胎费用台账：仅追加的带日期费用序列（购置、翻新、维修）。
// 条目一旦写入不可修改、不可删除；删除属于后台管理动作，不在台账契约内。
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/treadtrack/treadtrack/internal/models"
)

// Ledger 单胎费用台账。插入顺序即时间顺序，永不重排。
type Ledger struct {
	entries []models.CostEntry
}

// New 从既有条目构造台账（条目按插入顺序给出）
func New(entries []models.CostEntry) *Ledger {
	l := &Ledger{entries: make([]models.CostEntry, len(entries))}
	copy(l.entries, entries)
	return l
}

// Add 追加一条费用。金额必须为正，否则返回 ValidationError 且台账不变。
func (l *Ledger) Add(amount decimal.Decimal, date time.Time) (models.CostEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.CostEntry{}, models.NewValidationError("amount", "must be positive")
	}
	entry := models.CostEntry{Amount: amount, Date: date}
	l.entries = append(l.entries, entry)
	return entry, nil
}

// Total 全部条目金额之和
func (l *Ledger) Total() decimal.Decimal {
	return Total(l.entries)
}

// Len 条目数
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries 返回条目副本，保持插入顺序
func (l *Ledger) Entries() []models.CostEntry {
	out := make([]models.CostEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Total 对一组费用条目求和
func Total(entries []models.CostEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}
