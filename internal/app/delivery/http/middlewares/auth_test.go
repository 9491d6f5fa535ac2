package middlewares

import (
	"context"
	"labtrail-service/internal/app/config"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"
	"labtrail-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionService struct {
	sessions map[string]*models.Session
}

func (f *fakeSessionService) GetSession(_ context.Context, sessionID string) (*models.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return session, nil
}

func newTestMiddlewares() *Middlewares {
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
	}
	sessionService := &fakeSessionService{sessions: map[string]*models.Session{
		"sess-1": {SessionID: "sess-1", UserID: "op-1", Role: constvars.RoleTechnician},
	}}
	return NewMiddlewares(zap.NewNop(), sessionService, internalConfig)
}

func TestAuthenticate(t *testing.T) {
	middlewares := newTestMiddlewares()

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_KEY).(*models.Session)
		assert.True(t, ok, "session should be set in context")
		assert.Equal(t, "op-1", session.UserID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("sess-1", "test-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/specimens/mine", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/specimens/mine", nil)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("sess-1", "other-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/specimens/mine", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("sess-expired", "test-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/specimens/mine", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	middlewares := newTestMiddlewares()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	requestWithRole := func(role string) *http.Request {
		req := httptest.NewRequest("GET", "/api/v1/specimens", nil)
		session := &models.Session{SessionID: "sess-1", UserID: "op-1", Role: role}
		ctx := context.WithValue(req.Context(), constvars.CONTEXT_SESSION_KEY, session)
		return req.WithContext(ctx)
	}

	t.Run("allowed role passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		middlewares.RequireRoles(constvars.RoleSupervisor)(okHandler).ServeHTTP(rr, requestWithRole(constvars.RoleSupervisor))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		middlewares.RequireRoles(constvars.RoleSupervisor)(okHandler).ServeHTTP(rr, requestWithRole(constvars.RoleTechnician))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("no session is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/specimens", nil)
		rr := httptest.NewRecorder()
		middlewares.RequireRoles(constvars.RoleSupervisor)(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
