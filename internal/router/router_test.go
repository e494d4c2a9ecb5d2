package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reckue_account/internal/dao/mysql/repository"
	"reckue_account/internal/handler"
	"reckue_account/internal/service"
	"reckue_account/internal/service/auth"
	"reckue_account/internal/service/health"
	"reckue_account/internal/testutil"
	"reckue_account/pkg/constants"
	"reckue_account/pkg/errorx"
	"reckue_account/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	manager := jwt.NewManager(jwt.Config{
		Secret:             "router-test-secret",
		Issuer:             "reckue_account",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: time.Hour,
	})
	repos := &repository.Repositories{User: testutil.NewUserRepository()}
	svc := &service.Services{
		Auth:   auth.NewAuthService(repos.User, testutil.NewTokenStore(), manager),
		Health: health.NewHealthService(),
	}

	engine := gin.New()
	NewRouter(handler.NewHandlers(svc), manager).RegisterRoutes(engine)
	return engine
}

type authBody struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

func call(t *testing.T, r http.Handler, method, target, body, accessToken string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeAuth(t *testing.T, w *httptest.ResponseRecorder) authBody {
	t.Helper()
	var out authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRouteTableRoles(t *testing.T) {
	rt := NewRouter(&handler.Handlers{Auth: &handler.AuthHandler{}, Health: &handler.HealthHandler{}}, nil)

	roles := map[string][]string{}
	for _, r := range rt.Routes() {
		roles[r.Method+" "+r.Path] = r.Roles
	}

	assert.Empty(t, roles["POST /register"])
	assert.Empty(t, roles["POST /login"])
	assert.Empty(t, roles["GET /health"])
	assert.ElementsMatch(t, []string{constants.RoleAdmin, constants.RoleUser}, roles["GET /current_user"])
	assert.ElementsMatch(t, []string{constants.RoleAdmin, constants.RoleUser}, roles["GET /refresh_token"])
}

func TestAccountLifecycle(t *testing.T) {
	r := newTestEngine(t)

	// 注册
	w := call(t, r, http.MethodPost, "/register", `{"username":"alice","email":"alice@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decodeAuth(t, w)
	assert.Equal(t, constants.TokenTypeBearer, registered.TokenType)

	// 重复注册
	w = call(t, r, http.MethodPost, "/register", `{"username":"alice","email":"alice@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// 登录
	w = call(t, r, http.MethodPost, "/login", `{"username":"alice","password":"secret1"}`, "")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	login := decodeAuth(t, w)
	assert.Equal(t, registered.UserID, login.UserID)

	w = call(t, r, http.MethodPost, "/login", `{"username":"alice","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 当前用户
	w = call(t, r, http.MethodGet, "/current_user", "", login.AccessToken)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	var me map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, registered.UserID, me["id"])
	assert.NotContains(t, me, "password")
	assert.NotNil(t, me["lastVisit"])

	// 登录覆盖了注册时签发的 Refresh Token
	w = call(t, r, http.MethodGet, "/refresh_token?refresh_token="+registered.RefreshToken, "", login.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 刷新成功后旧令牌失效
	w = call(t, r, http.MethodGet, "/refresh_token?refresh_token="+login.RefreshToken, "", login.AccessToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	refreshed := decodeAuth(t, w)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	w = call(t, r, http.MethodGet, "/refresh_token?refresh_token="+login.RefreshToken, "", refreshed.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 新的 Access Token 可用
	w = call(t, r, http.MethodGet, "/current_user", "", refreshed.AccessToken)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRegisterMultibytePasswordOverLimit(t *testing.T) {
	r := newTestEngine(t)

	body := `{"username":"alice","email":"alice@example.com","password":"` + strings.Repeat("密", 30) + `"}`
	w := call(t, r, http.MethodPost, "/register", body, "")
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errorx.CodeInvalidParam, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t)

	w := call(t, r, http.MethodGet, "/current_user", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodGet, "/refresh_token?refresh_token=x", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodGet, "/current_user", "", "forged.token.value")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenCannotAuthenticate(t *testing.T) {
	r := newTestEngine(t)
	w := call(t, r, http.MethodPost, "/register", `{"username":"bob","email":"bob@example.com","password":"secret2"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	out := decodeAuth(t, w)

	w = call(t, r, http.MethodGet, "/current_user", "", out.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
