package domain

import (
	"time"

	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

var quoteStatusText = map[model.QuoteStatus]string{
	model.QuotePending:   "待确认",
	model.QuoteConfirmed: "已确认",
	model.QuoteRejected:  "已拒绝",
	model.QuoteExpired:   "已过期",
}

// QuoteStatusText 报价状态的中文描述
func QuoteStatusText(s model.QuoteStatus) string {
	if text, ok := quoteStatusText[s]; ok {
		return text
	}
	return "未知状态"
}

// quoteTransitions pending 之外的状态均为终态
var quoteTransitions = map[model.QuoteStatus][]model.QuoteStatus{
	model.QuotePending: {model.QuoteConfirmed, model.QuoteRejected, model.QuoteExpired},
}

// CanTransitionQuote 报价状态是否允许从 from 变更为 to
func CanTransitionQuote(from, to model.QuoteStatus) bool {
	for _, s := range quoteTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// DeriveQuote 重新计算明细小计与报价金额，并同步 statusText
// 有明细时 amount 为明细合计；无明细时 amount 必须为正数
func DeriveQuote(q *model.Quote) error {
	if len(q.Items) > 0 {
		var total float64
		for i := range q.Items {
			item := &q.Items[i]
			if item.Quantity <= 0 {
				return pkgerrors.Validation("items", "明细数量必须大于0")
			}
			if item.UnitPrice < 0 {
				return pkgerrors.Validation("items", "明细单价不能为负数")
			}
			item.TotalPrice = RoundMoney(item.Quantity * item.UnitPrice)
			total += item.TotalPrice
		}
		q.Amount = RoundMoney(total)
	} else if q.Amount <= 0 {
		return pkgerrors.Validation("amount", "必须提供报价金额")
	}

	q.StatusText = QuoteStatusText(q.Status)
	return nil
}

// ExpireIfLapsed 待确认报价超过有效期时转为已过期，返回是否发生变更
func ExpireIfLapsed(q *model.Quote, now time.Time) bool {
	if q.Status != model.QuotePending || !now.After(q.ValidUntil) {
		return false
	}
	q.Status = model.QuoteExpired
	q.StatusText = QuoteStatusText(q.Status)
	return true
}

// ConfirmQuote 客户确认报价
// 调用方需先调用 ExpireIfLapsed 处理过期
func ConfirmQuote(q *model.Quote, now time.Time) error {
	switch q.Status {
	case model.QuoteExpired:
		return pkgerrors.ErrQuoteExpired
	case model.QuoteConfirmed:
		return pkgerrors.ErrQuoteAlreadyConfirmed
	case model.QuoteRejected:
		return pkgerrors.ErrQuoteRejected
	}

	q.Status = model.QuoteConfirmed
	q.StatusText = QuoteStatusText(q.Status)
	confirmedAt := now
	q.ConfirmedAt = &confirmedAt
	return nil
}

// ChangeQuoteStatus 员工修改报价状态（拒绝、过期或保持不变）
func ChangeQuoteStatus(q *model.Quote, to model.QuoteStatus) error {
	if !to.Valid() {
		return pkgerrors.Validation("status", "无效的报价状态")
	}
	if to == q.Status {
		return nil
	}
	if to == model.QuoteConfirmed {
		return pkgerrors.StateConflict(pkgerrors.CodeInvalidTransition, "报价只能由客户确认")
	}
	if !CanTransitionQuote(q.Status, to) {
		return pkgerrors.StateConflict(pkgerrors.CodeInvalidTransition,
			"报价状态不能从 "+string(q.Status)+" 变更为 "+string(to))
	}
	q.Status = to
	q.StatusText = QuoteStatusText(to)
	return nil
}
