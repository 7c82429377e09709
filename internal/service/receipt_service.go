package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/domain"
	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

var ErrReceiptNotFound = pkgerrors.NotFound("收据不存在")

// receiptNumberAttempts 收据编号冲突时的最大生成次数
const receiptNumberAttempts = 3

// ReceiptService 收据业务接口
type ReceiptService interface {
	List(ctx context.Context, req *dto.ReceiptListRequest, caller Caller) (*dto.PageResult[model.Receipt], error)
	Get(ctx context.Context, id string, caller Caller) (*model.Receipt, error)
	Create(ctx context.Context, req *dto.CreateReceiptRequest, caller Caller) (*model.Receipt, error)
	Update(ctx context.Context, id string, req *dto.UpdateReceiptRequest, caller Caller) (*model.Receipt, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type receiptService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReceiptService 创建 ReceiptService 实例
func NewReceiptService(repo *repository.Repository, logger *zap.Logger) ReceiptService {
	return &receiptService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *receiptService) List(ctx context.Context, req *dto.ReceiptListRequest, caller Caller) (*dto.PageResult[model.Receipt], error) {
	receipts, total, err := s.repo.Receipt.List(ctx, repository.ReceiptFilter{
		ClientID: caller.scopeClient(req.ClientID),
		Page:     repository.Page{Offset: req.GetOffset(), Limit: req.GetLimit()},
	})
	if err != nil {
		s.logger.Error("查询收据列表失败", zap.Error(err))
		return nil, err
	}
	return dto.NewPageResult(receipts, total, &req.PaginationRequest), nil
}

func (s *receiptService) Get(ctx context.Context, id string, caller Caller) (*model.Receipt, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(r.ClientID) {
		return nil, pkgerrors.ErrNoPermission
	}
	return r, nil
}

// ────────────────────── Create ──────────────────────

func (s *receiptService) Create(ctx context.Context, req *dto.CreateReceiptRequest, caller Caller) (*model.Receipt, error) {
	method := model.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, pkgerrors.Validation("paymentMethod", "无效的付款方式")
	}
	if err := checkClientRef(ctx, s.repo, s.logger, "client", req.Client); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &model.Receipt{
		ClientID:      req.Client,
		ProjectID:     req.Project,
		Amount:        req.Amount,
		PaymentMethod: method,
		PaymentDate:   now,
		Description:   req.Description,
		Items:         orEmpty(req.Items),
		TaxRate:       req.TaxRate,
		Notes:         req.Notes,
		CreatedBy:     caller.ID,
	}
	if req.PaymentDate != nil {
		r.PaymentDate = *req.PaymentDate
	}
	if err := domain.DeriveReceipt(r); err != nil {
		return nil, err
	}

	// 同一毫秒内生成的编号可能冲突，由唯一索引发现后重新生成
	var err error
	for attempt := 0; attempt < receiptNumberAttempts; attempt++ {
		r.ReceiptNumber = domain.ReceiptNumber(time.Now())
		if err = s.repo.Receipt.Create(ctx, r); !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		s.logger.Warn("收据编号冲突，重新生成", zap.String("receipt_number", r.ReceiptNumber))
		time.Sleep(time.Millisecond)
	}
	if err != nil {
		s.logger.Error("创建收据失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("收据已创建",
		zap.String("receipt_id", r.ReceiptID),
		zap.String("receipt_number", r.ReceiptNumber),
		zap.Float64("total_amount", r.TotalAmount),
	)
	return r, nil
}

// ────────────────────── Update ──────────────────────

// Update 修改收据；收据编号创建后不可变，请求中的 receiptNumber 被忽略
func (s *receiptService) Update(ctx context.Context, id string, req *dto.UpdateReceiptRequest, caller Caller) (*model.Receipt, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ReceiptNumber != nil && *req.ReceiptNumber != r.ReceiptNumber {
		s.logger.Debug("忽略收据编号修改", zap.String("id", id), zap.String("requested", *req.ReceiptNumber))
	}

	if req.Project != nil {
		r.ProjectID = req.Project
	}
	if req.PaymentMethod != nil {
		method := model.PaymentMethod(*req.PaymentMethod)
		if !method.Valid() {
			return nil, pkgerrors.Validation("paymentMethod", "无效的付款方式")
		}
		r.PaymentMethod = method
	}
	if req.PaymentDate != nil {
		r.PaymentDate = *req.PaymentDate
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}

	// 明细或税率变化时金额重新跟随合计，除非同时显式指定
	recompute := req.Items != nil || req.TaxRate != nil
	if req.Items != nil {
		r.Items = req.Items
		if len(r.Items) == 0 {
			r.TaxAmount = 0
			r.TotalAmount = 0
		}
	}
	if req.TaxRate != nil {
		r.TaxRate = *req.TaxRate
	}
	switch {
	case req.Amount != nil:
		r.Amount = *req.Amount
	case recompute:
		r.Amount = 0
	}
	if err := domain.DeriveReceipt(r); err != nil {
		return nil, err
	}

	if err := s.repo.Receipt.Update(ctx, r); err != nil {
		logWriteErr(s.logger, "更新收据失败", id, err)
		return nil, err
	}
	s.logger.Info("收据已更新", zap.String("id", id), zap.String("updated_by", caller.ID))
	return r, nil
}

// ────────────────────── Delete ──────────────────────

func (s *receiptService) Delete(ctx context.Context, id string, caller Caller) error {
	r, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Receipt.Delete(ctx, r, caller.ID); err != nil {
		logWriteErr(s.logger, "删除收据失败", id, err)
		return err
	}
	return nil
}

// ── 辅助函数 ──

func (s *receiptService) get(ctx context.Context, id string) (*model.Receipt, error) {
	r, err := s.repo.Receipt.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		s.logger.Error("查询收据失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return r, nil
}
