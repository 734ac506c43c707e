package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MockAccountService is a function-field fake of AccountService.
type MockAccountService struct {
	RegisterFn func(ctx context.Context, email, password, fullName string) (*service.TokenPair, error)
	LoginFn    func(ctx context.Context, email, password string) (*service.TokenPair, error)
	RefreshFn  func(ctx context.Context, refreshToken string) (*service.TokenPair, error)
}

func (m *MockAccountService) Register(ctx context.Context, email, password, fullName string) (*service.TokenPair, error) {
	return m.RegisterFn(ctx, email, password, fullName)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	return m.LoginFn(ctx, email, password)
}

func (m *MockAccountService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	return m.RefreshFn(ctx, refreshToken)
}

// MockGenerationService is a function-field fake of GenerationService.
type MockGenerationService struct {
	GenerateFn func(ctx context.Context, userID uuid.UUID, req domain.GenerationRequest) (*service.GenerationResult, error)
	Calls      int
}

func (m *MockGenerationService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req domain.GenerationRequest,
) (*service.GenerationResult, error) {
	m.Calls++
	return m.GenerateFn(ctx, userID, req)
}

// MockSessionService is a function-field fake of SessionService.
type MockSessionService struct {
	ListRecentFn func(ctx context.Context, userID uuid.UUID) ([]domain.Session, error)
	GetFn        func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	CardsFn      func(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.Flashcard, error)
	DeleteFn     func(ctx context.Context, userID, sessionID uuid.UUID) error
}

func (m *MockSessionService) ListRecent(ctx context.Context, userID uuid.UUID) ([]domain.Session, error) {
	return m.ListRecentFn(ctx, userID)
}

func (m *MockSessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	return m.GetFn(ctx, userID, sessionID)
}

func (m *MockSessionService) Cards(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.Flashcard, error) {
	return m.CardsFn(ctx, userID, sessionID)
}

func (m *MockSessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	return m.DeleteFn(ctx, userID, sessionID)
}

// MockSettingsService is a function-field fake of SettingsService.
type MockSettingsService struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*service.SettingsView, error)
	UpdateFn func(ctx context.Context, userID uuid.UUID, update service.SettingsUpdate) (*service.SettingsView, error)
}

func (m *MockSettingsService) Get(ctx context.Context, userID uuid.UUID) (*service.SettingsView, error) {
	return m.GetFn(ctx, userID)
}

func (m *MockSettingsService) Update(
	ctx context.Context,
	userID uuid.UUID,
	update service.SettingsUpdate,
) (*service.SettingsView, error) {
	return m.UpdateFn(ctx, userID, update)
}

// MockProfileService is a function-field fake of ProfileService.
type MockProfileService struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	RenameFn func(ctx context.Context, userID uuid.UUID, fullName string) (*domain.Profile, error)
}

func (m *MockProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return m.GetFn(ctx, userID)
}

func (m *MockProfileService) Rename(ctx context.Context, userID uuid.UUID, fullName string) (*domain.Profile, error) {
	return m.RenameFn(ctx, userID, fullName)
}

// newRequest builds a request with an optional JSON body and authenticated user.
func newRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := shared.SetTraceID(req.Context())
	if userID != uuid.Nil {
		ctx = shared.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}
