package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"servihub_backend/internal/auth"
	"servihub_backend/internal/config"
	"servihub_backend/internal/email"
	"servihub_backend/internal/handlers"
	"servihub_backend/internal/models"
	"servihub_backend/internal/repositories"
	"servihub_backend/internal/routes"
	"servihub_backend/internal/services"
	"servihub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setTestConfig() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Admin.DefaultListLimit = 50
	cfg.Admin.MaxListLimit = 200
	config.AppConfig = cfg
}

// ---- фейковые репозитории ----

type fakeUserRepo struct {
	users      []models.User
	banErr     error
	findAllErr error
	lastLimit  int
	lastOffset int
	calls      int
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	f.calls++
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	f.calls++
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.calls++
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindAll(limit, offset int, search string) ([]models.User, error) {
	f.calls++
	f.lastLimit = limit
	f.lastOffset = offset
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}

	matched := make([]models.User, 0)
	needle := strings.ToLower(search)
	for _, u := range f.users {
		if search == "" ||
			strings.Contains(strings.ToLower(u.Email), needle) ||
			strings.Contains(strings.ToLower(u.Name), needle) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return []models.User{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeUserRepo) Ban(userID string, until time.Time) error {
	f.calls++
	if f.banErr != nil {
		return f.banErr
	}
	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].Status = models.UserStatusBanned
			f.users[i].BannedUntil = &until
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

type fakeBanRepo struct {
	bans      []models.UserBan
	createErr error
}

func (f *fakeBanRepo) Create(ban *models.UserBan) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.bans = append(f.bans, *ban)
	return nil
}

func (f *fakeBanRepo) FindByUser(userID string) ([]models.UserBan, error) {
	found := make([]models.UserBan, 0)
	for _, b := range f.bans {
		if b.UserID == userID {
			found = append(found, b)
		}
	}
	return found, nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	setErr   error
}

func (f *fakeProfileRepo) FindByID(id string) (*models.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) FindByUserID(userID string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) SetVerified(profileID string) error {
	if f.setErr != nil {
		return f.setErr
	}
	p, ok := f.profiles[profileID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.Verified = true
	return nil
}

type fakeVerificationRepo struct {
	verifications []models.ProfileVerification
}

func (f *fakeVerificationRepo) FindByID(id string) (*models.ProfileVerification, error) {
	for i := range f.verifications {
		if f.verifications[i].ID == id {
			v := f.verifications[i]
			return &v, nil
		}
	}
	return nil, repositories.ErrVerificationNotFound
}

func (f *fakeVerificationRepo) FindPending() ([]models.ProfileVerification, error) {
	pending := make([]models.ProfileVerification, 0)
	for _, v := range f.verifications {
		if v.Status == models.VerificationStatusPending {
			pending = append(pending, v)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].SubmittedAt.Before(pending[j].SubmittedAt)
	})
	return pending, nil
}

func (f *fakeVerificationRepo) MarkReviewed(id string, status models.VerificationStatus, reviewerID, notes string) error {
	for i := range f.verifications {
		if f.verifications[i].ID == id {
			now := time.Now()
			f.verifications[i].Status = status
			f.verifications[i].ReviewedBy = &reviewerID
			f.verifications[i].ReviewedAt = &now
			f.verifications[i].ReviewNotes = notes
			return nil
		}
	}
	return repositories.ErrVerificationNotFound
}

type fakeStatsRepo struct {
	users, profiles, demands, proposals int64
	revenue                             float64
	err                                 error
	calls                               int
}

func (f *fakeStatsRepo) CountUsers() (int64, error)     { f.calls++; return f.users, f.err }
func (f *fakeStatsRepo) CountProfiles() (int64, error)  { f.calls++; return f.profiles, f.err }
func (f *fakeStatsRepo) CountDemands() (int64, error)   { f.calls++; return f.demands, f.err }
func (f *fakeStatsRepo) CountProposals() (int64, error) { f.calls++; return f.proposals, f.err }
func (f *fakeStatsRepo) ActiveSubscriptionRevenue() (float64, error) {
	f.calls++
	return f.revenue, f.err
}

type fakeEmailProvider struct {
	banNotices []string
	decisions  []string
}

func (f *fakeEmailProvider) SendBanNotice(to, _ string) error {
	f.banNotices = append(f.banNotices, to)
	return nil
}

func (f *fakeEmailProvider) SendVerificationDecision(to string, _ bool, _ string) error {
	f.decisions = append(f.decisions, to)
	return nil
}

func (f *fakeEmailProvider) Close() error { return nil }

var _ email.Provider = (*fakeEmailProvider)(nil)

// ---- тестовое окружение ----

type testEnv struct {
	userRepo         *fakeUserRepo
	banRepo          *fakeBanRepo
	profileRepo      *fakeProfileRepo
	verificationRepo *fakeVerificationRepo
	statsRepo        *fakeStatsRepo
	email            *fakeEmailProvider
	router           *gin.Engine
}

func newTestEnv() *testEnv {
	setTestConfig()

	env := &testEnv{
		userRepo:         &fakeUserRepo{},
		banRepo:          &fakeBanRepo{},
		profileRepo:      &fakeProfileRepo{profiles: map[string]*models.Profile{}},
		verificationRepo: &fakeVerificationRepo{},
		statsRepo:        &fakeStatsRepo{},
		email:            &fakeEmailProvider{},
	}

	base := handlers.NewBaseHandler(validator.New())
	adminService := services.NewAdminService(
		env.userRepo, env.banRepo, env.profileRepo, env.verificationRepo, env.statsRepo, env.email,
	)
	authService := services.NewAuthService(env.userRepo)

	env.router = routes.SetupRouter(&handlers.AppHandlers{
		AuthHandler:  handlers.NewAuthHandler(base, authService),
		AdminHandler: handlers.NewAdminHandler(base, adminService),
	})
	return env
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("admin-1", string(models.UserRoleAdmin))
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedUser(env *testEnv, id, emailAddr, name string, role models.UserRole, createdAt time.Time) {
	env.userRepo.users = append(env.userRepo.users, models.User{
		BaseModel: models.BaseModel{ID: id, CreatedAt: createdAt},
		Email:     emailAddr,
		Name:      name,
		Role:      role,
		Status:    models.UserStatusActive,
	})
}

func seedVerification(env *testEnv, id, profileID, userID string, submittedAt time.Time) {
	profile := &models.Profile{
		BaseModel:   models.BaseModel{ID: profileID},
		UserID:      userID,
		DisplayName: "Test Provider",
		Trade:       "eletricista",
	}
	env.profileRepo.profiles[profileID] = profile
	env.verificationRepo.verifications = append(env.verificationRepo.verifications, models.ProfileVerification{
		BaseModel:   models.BaseModel{ID: id},
		ProfileID:   profileID,
		Status:      models.VerificationStatusPending,
		SubmittedAt: submittedAt,
		Profile:     *profile,
	})
}

// ---- авторизация ----

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPut, "/api/admin/users/u-1/ban"},
		{http.MethodGet, "/api/admin/verifications"},
		{http.MethodPut, "/api/admin/verifications/v-1/approve"},
		{http.MethodPut, "/api/admin/verifications/v-1/reject"},
	}

	for _, p := range paths {
		w := env.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}

	// Запросы не дошли ни до сервиса, ни до хранилища
	assert.Zero(t, env.statsRepo.calls)
	assert.Zero(t, env.userRepo.calls)
}

func TestAdminRoutesRejectInvalidToken(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/admin/stats", "not-a-jwt", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, env.statsRepo.calls)
}

func TestAdminRoutesRejectNonAdminRole(t *testing.T) {
	env := newTestEnv()
	token, err := auth.GenerateToken("client-1", string(models.UserRoleClient))
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/admin/stats", token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, env.statsRepo.calls)
}

// ---- статистика ----

func TestGetStats(t *testing.T) {
	env := newTestEnv()
	env.statsRepo.users = 10
	env.statsRepo.profiles = 7
	env.statsRepo.demands = 3
	env.statsRepo.proposals = 1
	env.statsRepo.revenue = 59.80

	w := env.do(t, http.MethodGet, "/api/admin/stats", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	stats, ok := body["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 10, stats["users"])
	assert.EqualValues(t, 7, stats["profiles"])
	assert.EqualValues(t, 3, stats["demands"])
	assert.EqualValues(t, 1, stats["proposals"])
	assert.InDelta(t, 59.80, stats["monthlyRevenue"], 0.001)
}

func TestGetStatsEmptyPlatform(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/admin/stats", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody(t, w)["stats"].(map[string]interface{})
	assert.EqualValues(t, 0, stats["users"])
	assert.EqualValues(t, 0, stats["proposals"])
	assert.InDelta(t, 0, stats["monthlyRevenue"], 0.001)
}

func TestGetStatsQueryFailure(t *testing.T) {
	env := newTestEnv()
	env.statsRepo.err = errors.New("connection refused")

	w := env.do(t, http.MethodGet, "/api/admin/stats", adminToken(t), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody(t, w), "error")
}

// ---- список пользователей ----

func TestGetUsersNewestFirst(t *testing.T) {
	env := newTestEnv()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedUser(env, "u-1", "old@example.com", "Old", models.UserRoleClient, base)
	seedUser(env, "u-2", "mid@example.com", "Mid", models.UserRoleProvider, base.Add(time.Hour))
	seedUser(env, "u-3", "new@example.com", "New", models.UserRoleClient, base.Add(2*time.Hour))

	w := env.do(t, http.MethodGet, "/api/admin/users?limit=2", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 2)
	assert.Equal(t, "u-3", users[0].(map[string]interface{})["id"])
	assert.Equal(t, "u-2", users[1].(map[string]interface{})["id"])
}

func TestGetUsersSearchCaseInsensitive(t *testing.T) {
	env := newTestEnv()
	now := time.Now()
	seedUser(env, "u-1", "joao@example.com", "João Silva", models.UserRoleProvider, now)
	seedUser(env, "u-2", "maria@example.com", "Maria Souza", models.UserRoleClient, now)

	w := env.do(t, http.MethodGet, "/api/admin/users?search=joão", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "u-1", users[0].(map[string]interface{})["id"])
}

func TestGetUsersNegativePagination(t *testing.T) {
	env := newTestEnv()

	for _, q := range []string{"limit=-1", "offset=-5"} {
		w := env.do(t, http.MethodGet, "/api/admin/users?"+q, adminToken(t), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	assert.Zero(t, env.userRepo.calls)
}

func TestGetUsersLimitClamped(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/admin/users?limit=100000", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, env.userRepo.lastLimit)
}

func TestGetUsersDefaultLimit(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/admin/users", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, env.userRepo.lastLimit)
	assert.Equal(t, 0, env.userRepo.lastOffset)
	// Пустая платформа отдает [], а не null
	assert.JSONEq(t, `{"users":[]}`, w.Body.String())
}

// ---- бан ----

func TestBanUser(t *testing.T) {
	env := newTestEnv()
	seedUser(env, "u-1", "banme@example.com", "Ban Me", models.UserRoleClient, time.Now())

	w := env.do(t, http.MethodPut, "/api/admin/users/u-1/ban", adminToken(t),
		map[string]string{"reason": "spam"})

	require.Equal(t, http.StatusOK, w.Code)

	banned := env.userRepo.users[0]
	assert.Equal(t, models.UserStatusBanned, banned.Status)
	require.NotNil(t, banned.BannedUntil)
	assert.True(t, banned.BannedUntil.After(time.Now().Add(24*time.Hour)))

	require.Len(t, env.banRepo.bans, 1)
	assert.Equal(t, "u-1", env.banRepo.bans[0].UserID)
	assert.Equal(t, "admin-1", env.banRepo.bans[0].BannedBy)
	assert.Equal(t, "spam", env.banRepo.bans[0].Reason)

	assert.Equal(t, []string{"banme@example.com"}, env.email.banNotices)
}

func TestBanUserWithoutBody(t *testing.T) {
	env := newTestEnv()
	seedUser(env, "u-1", "banme@example.com", "Ban Me", models.UserRoleClient, time.Now())

	w := env.do(t, http.MethodPut, "/api/admin/users/u-1/ban", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.banRepo.bans, 1)
	assert.Empty(t, env.banRepo.bans[0].Reason)
}

func TestBanUserRepeatAppendsAudit(t *testing.T) {
	env := newTestEnv()
	seedUser(env, "u-1", "banme@example.com", "Ban Me", models.UserRoleClient, time.Now())

	first := env.do(t, http.MethodPut, "/api/admin/users/u-1/ban", adminToken(t),
		map[string]string{"reason": "spam"})
	second := env.do(t, http.MethodPut, "/api/admin/users/u-1/ban", adminToken(t),
		map[string]string{"reason": "fraud"})

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	require.Len(t, env.banRepo.bans, 2)
	assert.Equal(t, "spam", env.banRepo.bans[0].Reason)
	assert.Equal(t, "fraud", env.banRepo.bans[1].Reason)
}

func TestBanUserNotFound(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPut, "/api/admin/users/missing/ban", adminToken(t), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.banRepo.bans)
}

func TestBanUserAuditWriteFailure(t *testing.T) {
	env := newTestEnv()
	seedUser(env, "u-1", "banme@example.com", "Ban Me", models.UserRoleClient, time.Now())
	env.banRepo.createErr = errors.New("disk full")

	w := env.do(t, http.MethodPut, "/api/admin/users/u-1/ban", adminToken(t), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "audit record")
	// Сам бан при этом применился
	assert.Equal(t, models.UserStatusBanned, env.userRepo.users[0].Status)
}

// ---- верификации ----

func TestGetVerificationsOldestFirst(t *testing.T) {
	env := newTestEnv()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedVerification(env, "v-2", "p-2", "u-2", base.Add(time.Hour))
	seedVerification(env, "v-1", "p-1", "u-1", base)

	w := env.do(t, http.MethodGet, "/api/admin/verifications", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)
	verifications := decodeBody(t, w)["verifications"].([]interface{})
	require.Len(t, verifications, 2)
	assert.Equal(t, "v-1", verifications[0].(map[string]interface{})["id"])
	assert.Equal(t, "v-2", verifications[1].(map[string]interface{})["id"])
}

func TestApproveVerification(t *testing.T) {
	env := newTestEnv()
	seedUser(env, "u-1", "provider@example.com", "Provider", models.UserRoleProvider, time.Now())
	seedVerification(env, "v-1", "p-1", "u-1", time.Now())

	w := env.do(t, http.MethodPut, "/api/admin/verifications/v-1/approve", adminToken(t), nil)

	require.Equal(t, http.StatusOK, w.Code)

	v := env.verificationRepo.verifications[0]
	assert.Equal(t, models.VerificationStatusApproved, v.Status)
	require.NotNil(t, v.ReviewedBy)
	assert.Equal(t, "admin-1", *v.ReviewedBy)
	assert.NotNil(t, v.ReviewedAt)

	assert.True(t, env.profileRepo.profiles["p-1"].Verified)
	assert.Equal(t, []string{"provider@example.com"}, env.email.decisions)

	// Одобренная заявка уходит из очереди
	pending := env.do(t, http.MethodGet, "/api/admin/verifications", adminToken(t), nil)
	assert.JSONEq(t, `{"verifications":[]}`, pending.Body.String())
}

func TestApproveVerificationNotFound(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPut, "/api/admin/verifications/missing/approve", adminToken(t), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApproveVerificationProfileUpdateFailure(t *testing.T) {
	env := newTestEnv()
	seedVerification(env, "v-1", "p-1", "u-1", time.Now())
	env.profileRepo.setErr = errors.New("deadlock detected")

	w := env.do(t, http.MethodPut, "/api/admin/verifications/v-1/approve", adminToken(t), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "profile was not updated")
	// Решение по заявке уже записано
	assert.Equal(t, models.VerificationStatusApproved, env.verificationRepo.verifications[0].Status)
}

func TestRejectVerification(t *testing.T) {
	env := newTestEnv()
	seedUser(env, "u-1", "provider@example.com", "Provider", models.UserRoleProvider, time.Now())
	seedVerification(env, "v-1", "p-1", "u-1", time.Now())

	w := env.do(t, http.MethodPut, "/api/admin/verifications/v-1/reject", adminToken(t),
		map[string]string{"reason": "documentos ilegíveis"})

	require.Equal(t, http.StatusOK, w.Code)

	v := env.verificationRepo.verifications[0]
	assert.Equal(t, models.VerificationStatusRejected, v.Status)
	assert.Equal(t, "documentos ilegíveis", v.ReviewNotes)
	// Профиль не получает флаг verified
	assert.False(t, env.profileRepo.profiles["p-1"].Verified)
	assert.Equal(t, []string{"provider@example.com"}, env.email.decisions)
}
