package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

var ErrExportGenerateFail = pkgerrors.Server()

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 收据按付款日期倒序逐行输出，末行为金额合计
type ExportService interface {
	// ExportReceipts 导出收据为 Excel，clientID 为空时导出全部客户
	ExportReceipts(ctx context.Context, clientID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var receiptHeaders = []string{
	"收据编号", "客户", "公司", "付款方式", "付款日期", "说明", "金额", "税率(%)", "税额", "总金额",
}

// ═══════════════════════════════════════════════════════════
// ExportReceipts 导出收据为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportReceipts(ctx context.Context, clientID string) (*bytes.Buffer, string, error) {
	// 1. 查询收据（不分页）
	receipts, _, err := s.repo.Receipt.List(ctx, repository.ReceiptFilter{ClientID: clientID})
	if err != nil {
		s.logger.Error("查询收据失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 解析客户名称，同一客户只查询一次
	clients := make(map[string]*model.User)
	for _, r := range receipts {
		if _, ok := clients[r.ClientID]; ok {
			continue
		}
		user, err := s.repo.User.GetByID(ctx, r.ClientID)
		if err != nil {
			// 客户已删除时仍导出收据，客户列留空
			user = nil
		}
		clients[r.ClientID] = user
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "收据"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})

	// 表头
	for i, h := range receiptHeaders {
		f.SetCellValue(sheetName, cellName(i+1, 1), h)
	}
	f.SetCellStyle(sheetName, cellName(1, 1), cellName(len(receiptHeaders), 1), headerStyle)

	// 数据行
	row := 2
	var sum float64
	for _, r := range receipts {
		var name, company string
		if u := clients[r.ClientID]; u != nil {
			name = u.LastName + u.FirstName
			company = u.Company
		}
		values := []interface{}{
			r.ReceiptNumber,
			name,
			company,
			string(r.PaymentMethod),
			r.PaymentDate.Format("2006-01-02"),
			r.Description,
			r.Amount,
			r.TaxRate,
			r.TaxAmount,
			r.TotalAmount,
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cellName(i+1, row), v)
		}
		sum += r.TotalAmount
		row++
	}

	// 合计行
	f.SetCellValue(sheetName, cellName(1, row), "合计")
	f.SetCellValue(sheetName, cellName(len(receiptHeaders), row), sum)
	f.SetCellStyle(sheetName, cellName(7, 2), cellName(len(receiptHeaders), row), moneyStyle)

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "C", 16)
	f.SetColWidth(sheetName, "F", "F", 30)

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("收据_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
