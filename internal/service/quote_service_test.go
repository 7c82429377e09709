package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

// ── 测试辅助 ──

func setupTestQuoteService() (QuoteService, *mockRepos) {
	repo, mocks := newMockRepos()
	return NewQuoteService(repo, zap.NewNop()), mocks
}

func createTestQuote(t *testing.T, svc QuoteService, client, manager *model.User, validUntil time.Time) *model.Quote {
	t.Helper()
	q, err := svc.Create(context.Background(), &dto.CreateQuoteRequest{
		ClientID:   client.UserID,
		Title:      "厨房翻新",
		ValidUntil: validUntil,
		Items: []model.QuoteItem{
			{Name: "瓷砖", Quantity: 2, UnitPrice: 50},
			{Name: "人工", Quantity: 1, UnitPrice: 30},
		},
	}, callerOf(manager))
	if err != nil {
		t.Fatalf("创建报价失败: %v", err)
	}
	return q
}

// ── Create 测试 ──

func TestQuoteService_Create_DerivesAmount(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	client := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)

	q := createTestQuote(t, svc, client, manager, time.Now().Add(24*time.Hour))

	if q.Amount != 130 {
		t.Errorf("期望 amount=130，实际 %v", q.Amount)
	}
	if q.Items[0].TotalPrice != 100 || q.Items[1].TotalPrice != 30 {
		t.Errorf("明细小计不正确: %+v", q.Items)
	}
	if q.Status != model.QuotePending || q.StatusText != "待确认" {
		t.Errorf("新报价应为待确认，实际 %s/%s", q.Status, q.StatusText)
	}
	if q.CreatedBy != manager.UserID {
		t.Errorf("createdBy 应为创建人，实际 %s", q.CreatedBy)
	}
}

func TestQuoteService_Create_ClientMustExist(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	manager := mocks.addUser(model.RoleManager)
	employee := mocks.addUser(model.RoleEmployee)

	_, err := svc.Create(context.Background(), &dto.CreateQuoteRequest{
		ClientID: "00000000-0000-0000-0000-000000000000", Title: "x", Amount: 10,
		ValidUntil: time.Now().Add(time.Hour),
	}, callerOf(manager))
	assertField(t, err, "clientId")

	_, err = svc.Create(context.Background(), &dto.CreateQuoteRequest{
		ClientID: employee.UserID, Title: "x", Amount: 10,
		ValidUntil: time.Now().Add(time.Hour),
	}, callerOf(manager))
	assertField(t, err, "clientId")
}

// ── Confirm 测试 ──

func TestQuoteService_Confirm(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	ctx := context.Background()
	client := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)
	q := createTestQuote(t, svc, client, manager, time.Now().Add(24*time.Hour))

	confirmed, err := svc.Confirm(ctx, q.QuoteID, callerOf(client))
	if err != nil {
		t.Fatalf("Confirm 应成功: %v", err)
	}
	if confirmed.Status != model.QuoteConfirmed || confirmed.StatusText != "已确认" {
		t.Errorf("期望已确认，实际 %s/%s", confirmed.Status, confirmed.StatusText)
	}
	if confirmed.ConfirmedAt == nil {
		t.Error("期望记录 confirmedAt")
	}

	// 再次确认
	_, err = svc.Confirm(ctx, q.QuoteID, callerOf(client))
	assertCode(t, err, pkgerrors.CodeQuoteAlreadyConfirmed)

	// 已确认的报价不可修改或删除
	title := "新标题"
	_, err = svc.Update(ctx, q.QuoteID, &dto.UpdateQuoteRequest{Title: &title}, callerOf(manager))
	assertCode(t, err, pkgerrors.CodeQuoteConfirmed)
	err = svc.Delete(ctx, q.QuoteID, callerOf(manager))
	assertCode(t, err, pkgerrors.CodeQuoteConfirmed)
}

func TestQuoteService_Confirm_NotOwner(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	client := mocks.addUser(model.RoleClient)
	other := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)
	q := createTestQuote(t, svc, client, manager, time.Now().Add(24*time.Hour))

	_, err := svc.Confirm(context.Background(), q.QuoteID, callerOf(other))
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestQuoteService_Confirm_NotFound(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	client := mocks.addUser(model.RoleClient)

	_, err := svc.Confirm(context.Background(), "missing", callerOf(client))
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestQuoteService_Confirm_ExpiredIsPersisted(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	client := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)
	q := createTestQuote(t, svc, client, manager, time.Now().Add(-time.Hour))

	_, err := svc.Confirm(context.Background(), q.QuoteID, callerOf(client))
	assertCode(t, err, pkgerrors.CodeQuoteExpired)

	stored := mocks.quote.quotes[q.QuoteID]
	if stored.Status != model.QuoteExpired || stored.StatusText != "已过期" {
		t.Errorf("过期状态应写回，实际 %s/%s", stored.Status, stored.StatusText)
	}
}

func TestQuoteService_Read_ShowsLapsedAsExpired(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	ctx := context.Background()
	client := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)
	q := createTestQuote(t, svc, client, manager, time.Now().Add(-time.Hour))

	got, err := svc.Get(ctx, q.QuoteID, callerOf(client))
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if got.Status != model.QuoteExpired || got.StatusText != "已过期" {
		t.Errorf("Get 期望呈现 expired，实际 %s/%s", got.Status, got.StatusText)
	}

	list, err := svc.List(ctx, &dto.QuoteListRequest{}, callerOf(client))
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Status != model.QuoteExpired {
		t.Errorf("List 期望呈现 expired，实际 %+v", list.Items)
	}

	// 读取不写回
	if stored := mocks.quote.quotes[q.QuoteID]; stored.Status != model.QuotePending {
		t.Errorf("读取不应修改存储状态，实际 %s", stored.Status)
	}
}

func TestQuoteService_Confirm_Rejected(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	ctx := context.Background()
	client := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)
	q := createTestQuote(t, svc, client, manager, time.Now().Add(24*time.Hour))

	rejected := string(model.QuoteRejected)
	if _, err := svc.Update(ctx, q.QuoteID, &dto.UpdateQuoteRequest{Status: &rejected}, callerOf(manager)); err != nil {
		t.Fatalf("拒绝报价应成功: %v", err)
	}

	_, err := svc.Confirm(ctx, q.QuoteID, callerOf(client))
	assertCode(t, err, pkgerrors.CodeQuoteRejected)
}

// ── Update 测试 ──

func TestQuoteService_Update_RecomputesAmount(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	client := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)
	q := createTestQuote(t, svc, client, manager, time.Now().Add(24*time.Hour))

	updated, err := svc.Update(context.Background(), q.QuoteID, &dto.UpdateQuoteRequest{
		Items: []model.QuoteItem{{Name: "油漆", Quantity: 3, UnitPrice: 12.5}},
	}, callerOf(manager))
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Amount != 37.5 {
		t.Errorf("期望 amount=37.5，实际 %v", updated.Amount)
	}
	if updated.Version != 2 {
		t.Errorf("期望 version=2，实际 %d", updated.Version)
	}
}

func TestQuoteService_Update_StaffCannotConfirm(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	client := mocks.addUser(model.RoleClient)
	manager := mocks.addUser(model.RoleManager)
	q := createTestQuote(t, svc, client, manager, time.Now().Add(24*time.Hour))

	confirmed := string(model.QuoteConfirmed)
	_, err := svc.Update(context.Background(), q.QuoteID, &dto.UpdateQuoteRequest{Status: &confirmed}, callerOf(manager))
	assertCode(t, err, pkgerrors.CodeInvalidTransition)
}

// ── 读取权限 ──

func TestQuoteService_Get_Ownership(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	ctx := context.Background()
	owner := mocks.addUser(model.RoleClient)
	other := mocks.addUser(model.RoleClient)
	admin := mocks.addUser(model.RoleAdmin)
	q := createTestQuote(t, svc, owner, admin, time.Now().Add(24*time.Hour))

	if _, err := svc.Get(ctx, q.QuoteID, callerOf(owner)); err != nil {
		t.Errorf("所有者读取应成功: %v", err)
	}
	if _, err := svc.Get(ctx, q.QuoteID, callerOf(admin)); err != nil {
		t.Errorf("管理员读取应成功: %v", err)
	}
	_, err := svc.Get(ctx, q.QuoteID, callerOf(other))
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestQuoteService_List_ClientScoped(t *testing.T) {
	svc, mocks := setupTestQuoteService()
	ctx := context.Background()
	a := mocks.addUser(model.RoleClient)
	b := mocks.addUser(model.RoleClient)
	admin := mocks.addUser(model.RoleAdmin)
	createTestQuote(t, svc, a, admin, time.Now().Add(time.Hour))
	createTestQuote(t, svc, b, admin, time.Now().Add(time.Hour))

	// 客户传入其他客户的 clientId 也只能看到自己的报价
	result, err := svc.List(ctx, &dto.QuoteListRequest{ClientID: b.UserID}, callerOf(a))
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if result.Total != 1 || result.Items[0].ClientID != a.UserID {
		t.Errorf("客户只能看到自己的报价，实际 total=%d", result.Total)
	}

	all, _ := svc.List(ctx, &dto.QuoteListRequest{}, callerOf(admin))
	if all.Total != 2 {
		t.Errorf("管理员应看到全部报价，实际 %d", all.Total)
	}
	filtered, _ := svc.List(ctx, &dto.QuoteListRequest{ClientID: b.UserID}, callerOf(admin))
	if filtered.Total != 1 {
		t.Errorf("管理员按 clientId 过滤，期望 1，实际 %d", filtered.Total)
	}
}
