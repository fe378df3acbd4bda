package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/service"
	"github.com/sincet/noticeboard-api/pkg/config"
)

type authUserRepoStub struct {
	users map[string]*models.User
}

func newAuthUserRepoStub() *authUserRepoStub {
	return &authUserRepoStub{users: make(map[string]*models.User)}
}

func (s *authUserRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (s *authUserRepoStub) Create(ctx context.Context, user *models.User) error {
	user.ID = "user-" + user.Email
	user.IsActive = true
	s.users[strings.ToLower(user.Email)] = user
	return nil
}

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	authSvc := service.NewAuthService(newAuthUserRepoStub(), nil, zap.NewNop(),
		config.AuthConfig{PrincipalEmail: "principal@college.edu", DefaultPassword: "college123"},
		config.CollegeConfig{
			Departments: []config.Department{
				{Code: "CSE", Name: "Computer Science & Engineering", HODEmail: "csehod@college.edu"},
			},
			Years: []string{"1st Year", "2nd Year"},
		})
	h := NewAuthHandler(authSvc, zap.NewNop())

	r := gin.New()
	r.Use(sessions.Sessions("nb_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/session", h.Session)
	return r
}

func TestAuthHandlerLoginStaff(t *testing.T) {
	r := newAuthTestRouter()

	body := `{"login_type":"staff","email":"csehod@college.edu","password":"college123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Set-Cookie"))

	var envelope struct {
		Data struct {
			Redirect string `json:"redirect"`
			User     struct {
				Role string `json:"role"`
				Name string `json:"name"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "/dashboard", envelope.Data.Redirect)
	require.Equal(t, string(models.RoleHOD), envelope.Data.User.Role)
	require.Equal(t, "HOD - Computer Science & Engineering", envelope.Data.User.Name)
}

func TestAuthHandlerLoginGeneralRedirectsToViewer(t *testing.T) {
	r := newAuthTestRouter()

	body := `{"login_type":"general","password":"college123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "/viewer", envelope.Data.Redirect)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	r := newAuthTestRouter()

	body := `{"login_type":"staff","email":"csehod@college.edu","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "INVALID_PASSWORD", envelope.Error.Code)
}

func TestAuthHandlerSessionRoundTrip(t *testing.T) {
	r := newAuthTestRouter()

	body := `{"login_type":"principal","email":"principal@college.edu","password":"college123"}`
	login := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	login.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	r.ServeHTTP(loginRec, login)
	require.Equal(t, http.StatusOK, loginRec.Code)

	sessionReq := httptest.NewRequest(http.MethodGet, "/session", nil)
	for _, cookieValue := range loginRec.Result().Cookies() {
		sessionReq.AddCookie(cookieValue)
	}
	sessionRec := httptest.NewRecorder()
	r.ServeHTTP(sessionRec, sessionReq)

	require.Equal(t, http.StatusOK, sessionRec.Code)
	var envelope struct {
		Data struct {
			User *struct {
				Role string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(sessionRec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.User)
	require.Equal(t, string(models.RolePrincipal), envelope.Data.User.Role)
}

func TestAuthHandlerLogout(t *testing.T) {
	r := newAuthTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "/login", envelope.Data.Redirect)
}
