package domain

import (
	"fmt"
	"time"

	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

// DeriveReceipt 重新计算收据派生金额
// subtotal = quantity × unitPrice；taxAmount = Σsubtotal × taxRate/100；totalAmount = Σsubtotal + taxAmount
// amount 未提供时取 totalAmount
func DeriveReceipt(r *model.Receipt) error {
	if r.TaxRate < 0 || r.TaxRate > 100 {
		return pkgerrors.Validation("taxRate", "税率必须在0到100之间")
	}

	if len(r.Items) > 0 {
		var sum float64
		for i := range r.Items {
			item := &r.Items[i]
			if item.Quantity < 1 {
				return pkgerrors.Validation("items", "数量必须大于0")
			}
			if item.UnitPrice < 0 {
				return pkgerrors.Validation("items", "单价不能为负数")
			}
			item.Subtotal = RoundMoney(item.Quantity * item.UnitPrice)
			sum += item.Subtotal
		}
		r.TaxAmount = RoundMoney(sum * r.TaxRate / 100)
		r.TotalAmount = RoundMoney(sum + r.TaxAmount)
	} else if r.TotalAmount <= 0 {
		r.TotalAmount = r.Amount
	}

	if r.Amount <= 0 {
		r.Amount = r.TotalAmount
	}
	if r.Amount <= 0 {
		return pkgerrors.Validation("amount", "必须指定金额")
	}
	return nil
}

// ReceiptNumber 生成收据编号 REC-YYYYMMDD-NNNNNN，序号取毫秒时间戳末 6 位
func ReceiptNumber(now time.Time) string {
	return fmt.Sprintf("REC-%s-%06d", now.Format("20060102"), now.UnixMilli()%1000000)
}
