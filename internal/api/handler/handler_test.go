package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/3Xbang/project/internal/api/middleware"
	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/service"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/jwt"
	"github.com/3Xbang/project/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult  *dto.AuthResponse
	loginErr     error
	registerErr  error
	logoutErr    error
	logoutJTI    string
	logoutExpiry time.Time
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Register(_ context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &dto.AuthResponse{User: dto.UserResponse{Email: req.Email, Role: string(model.RoleClient)}, Token: "t"}, nil
}
func (m *mockAuthService) Logout(_ context.Context, jti string, expiresAt time.Time) error {
	m.logoutJTI, m.logoutExpiry = jti, expiresAt
	return m.logoutErr
}
func (m *mockAuthService) Session(user *model.User) *dto.SessionResponse {
	return &dto.SessionResponse{IsAuthenticated: true, User: service.PublicProfile(user)}
}

// ── Mock QuoteService ──

type mockQuoteService struct {
	listResult *dto.PageResult[model.Quote]
	quote      *model.Quote
	err        error
	lastCaller service.Caller
}

func (m *mockQuoteService) List(_ context.Context, _ *dto.QuoteListRequest, caller service.Caller) (*dto.PageResult[model.Quote], error) {
	m.lastCaller = caller
	return m.listResult, m.err
}
func (m *mockQuoteService) Get(_ context.Context, _ string, caller service.Caller) (*model.Quote, error) {
	m.lastCaller = caller
	return m.quote, m.err
}
func (m *mockQuoteService) Create(_ context.Context, _ *dto.CreateQuoteRequest, caller service.Caller) (*model.Quote, error) {
	m.lastCaller = caller
	return m.quote, m.err
}
func (m *mockQuoteService) Update(_ context.Context, _ string, _ *dto.UpdateQuoteRequest, caller service.Caller) (*model.Quote, error) {
	m.lastCaller = caller
	return m.quote, m.err
}
func (m *mockQuoteService) Confirm(_ context.Context, _ string, caller service.Caller) (*model.Quote, error) {
	m.lastCaller = caller
	return m.quote, m.err
}
func (m *mockQuoteService) Delete(_ context.Context, _ string, caller service.Caller) error {
	m.lastCaller = caller
	return m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
	clientID string
}

func (m *mockExportService) ExportReceipts(_ context.Context, clientID string) (*bytes.Buffer, string, error) {
	m.clientID = clientID
	return m.buf, m.filename, m.err
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	ics string
}

func (m *mockCalendarService) ClientCalendar(_ context.Context, _ service.Caller) (string, error) {
	return m.ics, nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

const testQuoteID = "3f6c2b1e-8d4a-4f5b-9c7e-2a1b0c9d8e7f"

func asCaller(id string, role model.Role, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextRole, role)
		c.Set(middleware.ContextUser, &model.User{UserID: id, Role: role, Email: id + "@example.com"})
		next(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v (%s)", err, w.Body.String())
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{loginResult: &dto.AuthResponse{Token: "test-token"}}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", jsonBody(dto.LoginRequest{Email: "a@example.com", Password: "secret1"}))

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	data := parseResponse(t, w).Data.(map[string]interface{})
	if data["token"] != "test-token" {
		t.Errorf("期望返回 token，实际 %v", data["token"])
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", strings.NewReader("invalid json"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Error.Code != pkgerrors.CodeValidation {
		t.Errorf("期望 VALIDATION_ERROR，实际 %s", resp.Error.Code)
	}
}

func TestAuthHandler_Login_FieldNameFromJSONTag(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", jsonBody(map[string]string{"email": "not-an-email", "password": "x"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Error.Field != "email" {
		t.Errorf("期望 field=email，实际 %q", resp.Error.Field)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: pkgerrors.ErrInvalidCredentials})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", jsonBody(dto.LoginRequest{Email: "a@example.com", Password: "wrong"}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际 %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Error.Code != pkgerrors.CodeInvalidCredentials {
		t.Errorf("期望 INVALID_CREDENTIALS，实际 %s", resp.Error.Code)
	}
}

func TestAuthHandler_Register_Created(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	w := serve(r, http.MethodPost, "/auth/register", jsonBody(dto.RegisterRequest{
		FirstName: "三",
		LastName:  "张",
		Email:     "zhang@example.com",
		Password:  "secret1",
		Company:   "示例公司",
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthHandler_Logout_PassesTokenID(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	r := gin.New()
	r.POST("/auth/logout", asCaller("u1", model.RoleClient, func(c *gin.Context) {
		c.Set(middleware.ContextClaims, &jwt.Claims{
			UserID:           "u1",
			RegisteredClaims: jwtv5.RegisteredClaims{ID: "jti-1", ExpiresAt: jwtv5.NewNumericDate(exp)},
		})
		h.Logout(c)
	}))
	w := serve(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.logoutJTI != "jti-1" || !mock.logoutExpiry.Equal(exp) {
		t.Errorf("期望传入 jti-1 与过期时间，实际 %q %v", mock.logoutJTI, mock.logoutExpiry)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.GET("/auth/session", asCaller("u1", model.RoleClient, h.Session))
	r.GET("/anon/session", h.Session)

	w := serve(r, http.MethodGet, "/auth/session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	data := parseResponse(t, w).Data.(map[string]interface{})
	if data["isAuthenticated"] != true {
		t.Errorf("期望 isAuthenticated=true，实际 %v", data["isAuthenticated"])
	}

	if w := serve(r, http.MethodGet, "/anon/session", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("未认证期望 401，实际 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// QuoteHandler Tests
// ═══════════════════════════════════════════════════════════

func TestQuoteHandler_List_WrapsAndPaginates(t *testing.T) {
	mock := &mockQuoteService{listResult: &dto.PageResult[model.Quote]{
		Items: []model.Quote{{QuoteID: "q1"}, {QuoteID: "q2"}},
		Total: 12,
		Page:  1,
		Limit: 10,
	}}
	h := NewQuoteHandler(mock)

	r := gin.New()
	r.GET("/quotes", asCaller("c1", model.RoleClient, h.ListQuotes))
	w := serve(r, http.MethodGet, "/quotes", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Count == nil || *resp.Count != 2 {
		t.Errorf("期望 count=2，实际 %v", resp.Count)
	}
	if resp.Pagination == nil || resp.Pagination.Pages != 2 {
		t.Errorf("期望 pages=2，实际 %+v", resp.Pagination)
	}
	data := resp.Data.(map[string]interface{})
	if quotes, ok := data["quotes"].([]interface{}); !ok || len(quotes) != 2 {
		t.Errorf("期望 data.quotes 含 2 条，实际 %v", data["quotes"])
	}
	if mock.lastCaller.ID != "c1" || mock.lastCaller.Role != model.RoleClient {
		t.Errorf("期望调用方为 c1/client，实际 %+v", mock.lastCaller)
	}
}

func TestQuoteHandler_List_InvalidStatus(t *testing.T) {
	h := NewQuoteHandler(&mockQuoteService{})

	r := gin.New()
	r.GET("/quotes", asCaller("c1", model.RoleClient, h.ListQuotes))
	w := serve(r, http.MethodGet, "/quotes?status=bogus", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Error.Field != "status" {
		t.Errorf("期望 field=status，实际 %q", resp.Error.Field)
	}
}

func TestQuoteHandler_Confirm_Expired(t *testing.T) {
	h := NewQuoteHandler(&mockQuoteService{err: pkgerrors.ErrQuoteExpired})

	r := gin.New()
	r.PUT("/quotes/:id/confirm", asCaller("c1", model.RoleClient, h.ConfirmQuote))
	w := serve(r, http.MethodPut, "/quotes/"+testQuoteID+"/confirm", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Error.Code != pkgerrors.CodeQuoteExpired {
		t.Errorf("期望 QUOTE_EXPIRED，实际 %s", resp.Error.Code)
	}
}

func TestQuoteHandler_Delete(t *testing.T) {
	h := NewQuoteHandler(&mockQuoteService{})

	r := gin.New()
	r.DELETE("/quotes/:id", asCaller("a1", model.RoleAdmin, h.DeleteQuote))
	w := serve(r, http.MethodDelete, "/quotes/"+testQuoteID, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if data, ok := parseResponse(t, w).Data.(map[string]interface{}); !ok || len(data) != 0 {
		t.Errorf("期望 data 为空对象，实际 %v", data)
	}
}

func TestQuoteHandler_UnexpectedErrorIsServerError(t *testing.T) {
	h := NewQuoteHandler(&mockQuoteService{err: io.ErrUnexpectedEOF})

	r := gin.New()
	r.GET("/quotes/:id", asCaller("a1", model.RoleAdmin, h.GetQuote))
	w := serve(r, http.MethodGet, "/quotes/"+testQuoteID, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，实际 %d", w.Code)
	}
}

func TestQuoteHandler_MalformedIDIsNotFound(t *testing.T) {
	mock := &mockQuoteService{quote: &model.Quote{QuoteID: testQuoteID}}
	h := NewQuoteHandler(mock)

	r := gin.New()
	r.GET("/quotes/:id", asCaller("a1", model.RoleAdmin, h.GetQuote))
	r.PUT("/quotes/:id/confirm", asCaller("c1", model.RoleClient, h.ConfirmQuote))

	for _, path := range []string{"/quotes/abc", "/quotes/abc/confirm"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "/confirm") {
			method = http.MethodPut
		}
		w := serve(r, method, path, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s 期望 404，实际 %d", path, w.Code)
		}
		if resp := parseResponse(t, w); resp.Error.Code != pkgerrors.CodeNotFound {
			t.Errorf("%s 期望 NOT_FOUND，实际 %s", path, resp.Error.Code)
		}
	}
	if mock.lastCaller.ID != "" {
		t.Error("非法 ID 不应调用 Service")
	}
}

// ═══════════════════════════════════════════════════════════
// Export / Calendar Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportReceipts(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "收据_20260101.xlsx"}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/exports/receipts", h.ExportReceipts)
	w := serve(r, http.MethodGet, "/exports/receipts?clientId=7a1c0e52-4a55-4c1b-9f3e-1c2d3e4f5a6b", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type 不正确: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Errorf("Content-Disposition 不正确: %s", cd)
	}
	if mock.clientID != "7a1c0e52-4a55-4c1b-9f3e-1c2d3e4f5a6b" {
		t.Errorf("clientId 未透传: %q", mock.clientID)
	}
}

func TestExportHandler_InvalidClientID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	r := gin.New()
	r.GET("/exports/receipts", h.ExportReceipts)
	w := serve(r, http.MethodGet, "/exports/receipts?clientId=abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Error.Field != "clientId" {
		t.Errorf("期望 field=clientId，实际 %q", resp.Error.Field)
	}
}

func TestCalendarHandler_ContentType(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{ics: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"})

	r := gin.New()
	r.GET("/calendar.ics", asCaller("c1", model.RoleClient, h.ClientCalendar))
	w := serve(r, http.MethodGet, "/calendar.ics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type 不正确: %s", ct)
	}
}
