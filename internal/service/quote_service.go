package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/domain"
	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

var ErrQuoteNotFound = pkgerrors.NotFound("报价不存在")

// QuoteService 报价业务接口
type QuoteService interface {
	List(ctx context.Context, req *dto.QuoteListRequest, caller Caller) (*dto.PageResult[model.Quote], error)
	Get(ctx context.Context, id string, caller Caller) (*model.Quote, error)
	Create(ctx context.Context, req *dto.CreateQuoteRequest, caller Caller) (*model.Quote, error)
	Update(ctx context.Context, id string, req *dto.UpdateQuoteRequest, caller Caller) (*model.Quote, error)
	Confirm(ctx context.Context, id string, caller Caller) (*model.Quote, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type quoteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewQuoteService 创建 QuoteService 实例
func NewQuoteService(repo *repository.Repository, logger *zap.Logger) QuoteService {
	return &quoteService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *quoteService) List(ctx context.Context, req *dto.QuoteListRequest, caller Caller) (*dto.PageResult[model.Quote], error) {
	quotes, total, err := s.repo.Quote.List(ctx, repository.QuoteFilter{
		ClientID: caller.scopeClient(req.ClientID),
		Status:   model.QuoteStatus(req.Status),
		Page:     repository.Page{Offset: req.GetOffset(), Limit: req.GetLimit()},
	})
	if err != nil {
		s.logger.Error("查询报价列表失败", zap.Error(err))
		return nil, err
	}
	// 仅在响应中呈现过期状态，写回留给确认操作
	now := time.Now()
	for i := range quotes {
		domain.ExpireIfLapsed(&quotes[i], now)
	}
	return dto.NewPageResult(quotes, total, &req.PaginationRequest), nil
}

func (s *quoteService) Get(ctx context.Context, id string, caller Caller) (*model.Quote, error) {
	q, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(q.ClientID) {
		return nil, pkgerrors.ErrNoPermission
	}
	domain.ExpireIfLapsed(q, time.Now())
	return q, nil
}

// ────────────────────── Create ──────────────────────

func (s *quoteService) Create(ctx context.Context, req *dto.CreateQuoteRequest, caller Caller) (*model.Quote, error) {
	if err := checkClientRef(ctx, s.repo, s.logger, "clientId", req.ClientID); err != nil {
		return nil, err
	}

	q := &model.Quote{
		ClientID:    req.ClientID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Amount:      req.Amount,
		ValidUntil:  req.ValidUntil,
		Status:      model.QuotePending,
		ProjectID:   req.ProjectID,
		Items:       orEmpty(req.Items),
		Notes:       req.Notes,
		CreatedBy:   caller.ID,
	}
	if err := domain.DeriveQuote(q); err != nil {
		return nil, err
	}

	if err := s.repo.Quote.Create(ctx, q); err != nil {
		s.logger.Error("创建报价失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("报价已创建",
		zap.String("quote_id", q.QuoteID),
		zap.String("client_id", q.ClientID),
		zap.Float64("amount", q.Amount),
	)
	return q, nil
}

// ────────────────────── Update ──────────────────────

// Update 员工修改报价；已确认的报价不可修改
func (s *quoteService) Update(ctx context.Context, id string, req *dto.UpdateQuoteRequest, caller Caller) (*model.Quote, error) {
	q, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status == model.QuoteConfirmed {
		return nil, pkgerrors.ErrQuoteConfirmed
	}

	if req.Title != nil {
		q.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		q.Description = *req.Description
	}
	if req.ValidUntil != nil {
		q.ValidUntil = *req.ValidUntil
	}
	if req.ProjectID != nil {
		q.ProjectID = req.ProjectID
	}
	if req.Notes != nil {
		q.Notes = *req.Notes
	}
	if req.Items != nil {
		q.Items = req.Items
	}
	if req.Amount != nil && len(q.Items) == 0 {
		q.Amount = *req.Amount
	}
	if req.Status != nil {
		if err := domain.ChangeQuoteStatus(q, model.QuoteStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if err := domain.DeriveQuote(q); err != nil {
		return nil, err
	}

	if err := s.repo.Quote.Update(ctx, q); err != nil {
		logWriteErr(s.logger, "更新报价失败", id, err)
		return nil, err
	}
	s.logger.Info("报价已更新", zap.String("id", id), zap.String("updated_by", caller.ID))
	return q, nil
}

// ────────────────────── Confirm ──────────────────────

// Confirm 客户确认报价
// 校验顺序：存在 → 所有者 → 过期 → 已确认 → 已拒绝
func (s *quoteService) Confirm(ctx context.Context, id string, caller Caller) (*model.Quote, error) {
	q, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.ClientID != caller.ID {
		return nil, pkgerrors.Forbidden("无权确认此报价")
	}

	now := time.Now().UTC()
	if domain.ExpireIfLapsed(q, now) {
		// 过期状态写回数据库；并发下其他请求已改变状态时忽略冲突
		if err := s.repo.Quote.UpdateStatusFrom(ctx, q, model.QuotePending); err != nil &&
			!errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("写入报价过期状态失败", zap.String("id", id), zap.Error(err))
		}
		return nil, pkgerrors.ErrQuoteExpired
	}

	if err := domain.ConfirmQuote(q, now); err != nil {
		return nil, err
	}
	if err := s.repo.Quote.UpdateStatusFrom(ctx, q, model.QuotePending); err != nil {
		logWriteErr(s.logger, "确认报价失败", id, err)
		return nil, err
	}

	s.logger.Info("报价已确认", zap.String("id", id), zap.String("client_id", caller.ID))
	return q, nil
}

// ────────────────────── Delete ──────────────────────

func (s *quoteService) Delete(ctx context.Context, id string, caller Caller) error {
	q, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if q.Status == model.QuoteConfirmed {
		return pkgerrors.ErrQuoteConfirmed
	}
	if err := s.repo.Quote.Delete(ctx, q, caller.ID); err != nil {
		logWriteErr(s.logger, "删除报价失败", id, err)
		return err
	}
	s.logger.Info("报价已删除", zap.String("id", id), zap.String("deleted_by", caller.ID))
	return nil
}

// ── 辅助函数 ──

func (s *quoteService) get(ctx context.Context, id string) (*model.Quote, error) {
	q, err := s.repo.Quote.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("查询报价失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return q, nil
}
