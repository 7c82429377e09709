package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

// ── 测试辅助 ──

type mockRepos struct {
	user     *mockUserRepo
	project  *mockProjectRepo
	quote    *mockQuoteRepo
	repair   *mockRepairRepo
	receipt  *mockReceiptRepo
	tempWork *mockTempWorkRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:     &mockUserRepo{users: make(map[string]*model.User)},
		project:  &mockProjectRepo{projects: make(map[string]*model.Project)},
		quote:    &mockQuoteRepo{quotes: make(map[string]*model.Quote)},
		repair:   &mockRepairRepo{repairs: make(map[string]*model.Repair)},
		receipt:  &mockReceiptRepo{receipts: make(map[string]*model.Receipt)},
		tempWork: &mockTempWorkRepo{works: make(map[string]*model.TempWork)},
	}
	repo := &repository.Repository{
		User:     m.user,
		Project:  m.project,
		Quote:    m.quote,
		Repair:   m.repair,
		Receipt:  m.receipt,
		TempWork: m.tempWork,
	}
	return repo, m
}

func stamp(v *model.VersionedModel) {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	v.Version = 1
}

// bump 模拟 updateWithVersion：版本不一致时返回乐观锁错误
func bump(stored, incoming *model.VersionedModel) error {
	if stored.Version != incoming.Version {
		return pkgerrors.ErrOptimisticLock
	}
	incoming.Version++
	incoming.UpdatedAt = time.Now().UTC()
	return nil
}

func paginate[T any](items []T, page repository.Page) []T {
	if page.Limit <= 0 {
		return items
	}
	if page.Offset >= len(items) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	stamp(&user.VersionedModel)
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, page repository.Page) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return paginate(result, page), int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.UserID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := bump(&stored.VersionedModel, &user.VersionedModel); err != nil {
		return err
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, user *model.User, _ string) error {
	delete(m.users, user.UserID)
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func (m *mockProjectRepo) Create(_ context.Context, p *model.Project) error {
	if p.ProjectID == "" {
		p.ProjectID = uuid.NewString()
	}
	stamp(&p.VersionedModel)
	cp := *p
	m.projects[p.ProjectID] = &cp
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context, filter repository.ProjectFilter) ([]model.Project, int64, error) {
	var result []model.Project
	for _, p := range m.projects {
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return paginate(result, filter.Page), int64(len(result)), nil
}

func (m *mockProjectRepo) Update(_ context.Context, p *model.Project) error {
	stored, ok := m.projects[p.ProjectID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := bump(&stored.VersionedModel, &p.VersionedModel); err != nil {
		return err
	}
	cp := *p
	m.projects[p.ProjectID] = &cp
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, p *model.Project, _ string) error {
	delete(m.projects, p.ProjectID)
	return nil
}

// ── Mock QuoteRepository ──

type mockQuoteRepo struct {
	quotes map[string]*model.Quote
}

func (m *mockQuoteRepo) Create(_ context.Context, q *model.Quote) error {
	if q.QuoteID == "" {
		q.QuoteID = uuid.NewString()
	}
	stamp(&q.VersionedModel)
	cp := *q
	m.quotes[q.QuoteID] = &cp
	return nil
}

func (m *mockQuoteRepo) GetByID(_ context.Context, id string) (*model.Quote, error) {
	if q, ok := m.quotes[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuoteRepo) List(_ context.Context, filter repository.QuoteFilter) ([]model.Quote, int64, error) {
	var result []model.Quote
	for _, q := range m.quotes {
		if filter.ClientID != "" && q.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		result = append(result, *q)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return paginate(result, filter.Page), int64(len(result)), nil
}

func (m *mockQuoteRepo) Update(_ context.Context, q *model.Quote) error {
	stored, ok := m.quotes[q.QuoteID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := bump(&stored.VersionedModel, &q.VersionedModel); err != nil {
		return err
	}
	cp := *q
	m.quotes[q.QuoteID] = &cp
	return nil
}

func (m *mockQuoteRepo) UpdateStatusFrom(_ context.Context, q *model.Quote, from model.QuoteStatus) error {
	stored, ok := m.quotes[q.QuoteID]
	if !ok || stored.Status != from {
		return pkgerrors.ErrOptimisticLock
	}
	if err := bump(&stored.VersionedModel, &q.VersionedModel); err != nil {
		return err
	}
	cp := *q
	m.quotes[q.QuoteID] = &cp
	return nil
}

func (m *mockQuoteRepo) Delete(_ context.Context, q *model.Quote, _ string) error {
	stored, ok := m.quotes[q.QuoteID]
	if !ok || stored.Status == model.QuoteConfirmed {
		return pkgerrors.ErrOptimisticLock
	}
	delete(m.quotes, q.QuoteID)
	return nil
}

// ── Mock RepairRepository ──

type mockRepairRepo struct {
	repairs map[string]*model.Repair
}

func (m *mockRepairRepo) Create(_ context.Context, r *model.Repair) error {
	if r.RepairID == "" {
		r.RepairID = uuid.NewString()
	}
	stamp(&r.VersionedModel)
	cp := *r
	m.repairs[r.RepairID] = &cp
	return nil
}

func (m *mockRepairRepo) GetByID(_ context.Context, id string) (*model.Repair, error) {
	if r, ok := m.repairs[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepairRepo) List(_ context.Context, filter repository.RepairFilter) ([]model.Repair, int64, error) {
	var result []model.Repair
	for _, r := range m.repairs {
		if filter.ClientID != "" && r.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Scheduled && r.ScheduledDate == nil {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return paginate(result, filter.Page), int64(len(result)), nil
}

func (m *mockRepairRepo) CountByStatus(_ context.Context, clientID string) (map[model.RepairStatus]int64, error) {
	counts := make(map[model.RepairStatus]int64)
	for _, r := range m.repairs {
		if r.ClientID == clientID {
			counts[r.Status]++
		}
	}
	return counts, nil
}

func (m *mockRepairRepo) Update(_ context.Context, r *model.Repair) error {
	stored, ok := m.repairs[r.RepairID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := bump(&stored.VersionedModel, &r.VersionedModel); err != nil {
		return err
	}
	cp := *r
	m.repairs[r.RepairID] = &cp
	return nil
}

func (m *mockRepairRepo) Delete(_ context.Context, r *model.Repair, _ string) error {
	delete(m.repairs, r.RepairID)
	return nil
}

// ── Mock ReceiptRepository ──

type mockReceiptRepo struct {
	receipts map[string]*model.Receipt
}

func (m *mockReceiptRepo) Create(_ context.Context, r *model.Receipt) error {
	for _, existing := range m.receipts {
		if existing.ReceiptNumber == r.ReceiptNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if r.ReceiptID == "" {
		r.ReceiptID = uuid.NewString()
	}
	stamp(&r.VersionedModel)
	cp := *r
	m.receipts[r.ReceiptID] = &cp
	return nil
}

func (m *mockReceiptRepo) GetByID(_ context.Context, id string) (*model.Receipt, error) {
	if r, ok := m.receipts[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReceiptRepo) List(_ context.Context, filter repository.ReceiptFilter) ([]model.Receipt, int64, error) {
	var result []model.Receipt
	for _, r := range m.receipts {
		if filter.ClientID != "" && r.ClientID != filter.ClientID {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReceiptNumber < result[j].ReceiptNumber })
	return paginate(result, filter.Page), int64(len(result)), nil
}

// Update 与真实实现一致：收据编号不随更新写入
func (m *mockReceiptRepo) Update(_ context.Context, r *model.Receipt) error {
	stored, ok := m.receipts[r.ReceiptID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := bump(&stored.VersionedModel, &r.VersionedModel); err != nil {
		return err
	}
	cp := *r
	cp.ReceiptNumber = stored.ReceiptNumber
	m.receipts[r.ReceiptID] = &cp
	return nil
}

func (m *mockReceiptRepo) Delete(_ context.Context, r *model.Receipt, _ string) error {
	delete(m.receipts, r.ReceiptID)
	return nil
}

// ── Mock TempWorkRepository ──

type mockTempWorkRepo struct {
	works map[string]*model.TempWork
}

func (m *mockTempWorkRepo) Create(_ context.Context, tw *model.TempWork) error {
	if tw.TempWorkID == "" {
		tw.TempWorkID = uuid.NewString()
	}
	stamp(&tw.VersionedModel)
	cp := *tw
	m.works[tw.TempWorkID] = &cp
	return nil
}

func (m *mockTempWorkRepo) GetByID(_ context.Context, id string) (*model.TempWork, error) {
	if tw, ok := m.works[id]; ok {
		cp := *tw
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTempWorkRepo) List(_ context.Context, filter repository.TempWorkFilter) ([]model.TempWork, int64, error) {
	var result []model.TempWork
	for _, tw := range m.works {
		if filter.ClientID != "" && tw.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && tw.Status != filter.Status {
			continue
		}
		result = append(result, *tw)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return paginate(result, filter.Page), int64(len(result)), nil
}

func (m *mockTempWorkRepo) Update(_ context.Context, tw *model.TempWork) error {
	stored, ok := m.works[tw.TempWorkID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := bump(&stored.VersionedModel, &tw.VersionedModel); err != nil {
		return err
	}
	cp := *tw
	m.works[tw.TempWorkID] = &cp
	return nil
}

func (m *mockTempWorkRepo) Delete(_ context.Context, tw *model.TempWork, _ string) error {
	delete(m.works, tw.TempWorkID)
	return nil
}

// ── 测试数据 ──

func (m *mockRepos) addUser(role model.Role) *model.User {
	id := uuid.NewString()
	u := &model.User{
		UserID:    id,
		FirstName: "测试",
		LastName:  string(role),
		Email:     id[:8] + "@example.com",
		Role:      role,
	}
	if role == model.RoleClient {
		u.Company = "示例公司"
	} else {
		u.PermissionLevel = "standard"
	}
	stamp(&u.VersionedModel)
	m.user.users[id] = u
	return u
}

func callerOf(u *model.User) Caller {
	return Caller{ID: u.UserID, Role: u.Role}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := pkgerrors.As(err)
	if !ok {
		t.Fatalf("期望错误码 %s，实际: %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("期望错误码 %s，实际 %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	assertCode(t, err, pkgerrors.CodeValidation)
	appErr, _ := pkgerrors.As(err)
	if appErr.Field != field {
		t.Fatalf("期望校验字段 %s，实际 %s", field, appErr.Field)
	}
}
