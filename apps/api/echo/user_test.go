package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mahudhurio/core/user"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_userApi_health(t *testing.T) {
	f := setup(t)

	req, rec := newRequest(http.MethodGet, "/user/health")
	f.app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User route is healthy", rec.Body.String())
}

func Test_userApi_signUp(t *testing.T) {
	f := setup(t)
	testutil.CreateUser(t, f.usrRepo, "Taken", "taken@mail.com", "secret", user.RoleStudent)

	tests := []httpTest{
		{
			name:     "empty data fails",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{
				"name":     "this field is required",
				"email":    "this field is required",
				"password": "this field is required",
				"role":     "this field is required",
			}),
		},
		{
			name:     "invalid email fails",
			body:     marchallObj(t, user.NewUser{Name: "Hans", Email: "not-an-email", Password: "passwd", Role: user.RoleStudent}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name:     "unknown role fails",
			body:     marchallObj(t, user.NewUser{Name: "Hans", Email: "hans@mail.com", Password: "passwd", Role: "principal"}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{"role": "must be one of the allowed values"}),
		},
		{
			name:     "existing email fails",
			body:     marchallObj(t, user.NewUser{Name: "Hans", Email: "taken@mail.com", Password: "passwd", Role: user.RoleStudent}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{"email": user.ErrEmailExists.Error()}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/user/signup", tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("valid data succeeds", func(t *testing.T) {
		body := marchallObj(t, user.NewUser{Name: "Hans", Email: "hans@mail.com", Password: "passwd", Role: user.RoleTeacher})
		req, rec := newRequest(http.MethodPost, "/user/signup", body)
		f.app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Success bool      `json:"success"`
			Data    user.User `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.False(t, resp.Data.ID.IsZero())
		assert.Equal(t, "Hans", resp.Data.Name)
		assert.Equal(t, "hans@mail.com", resp.Data.Email)
		assert.Equal(t, user.RoleTeacher, resp.Data.Role)
		// the hash stays out of the response
		assert.False(t, strings.Contains(strings.ToLower(rec.Body.String()), "password"))
	})
}

func Test_userApi_signIn(t *testing.T) {
	f := setup(t)
	usr := testutil.CreateUser(t, f.usrRepo, "Hans", "hans@mail.com", "passwd", user.RoleTeacher)

	tests := []httpTest{
		{
			name:     "unknown email fails",
			body:     marchallObj(t, user.Credentials{Email: "ghost@mail.com", Password: "passwd"}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, "user not found"),
		},
		{
			name:     "wrong password fails",
			body:     marchallObj(t, user.Credentials{Email: usr.Email, Password: "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, "invalid email or password"),
		},
		{
			name:     "missing credentials fail",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/user/signin", tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("valid credentials succeed", func(t *testing.T) {
		body := marchallObj(t, user.Credentials{Email: usr.Email, Password: "passwd"})
		req, rec := newRequest(http.MethodPost, "/user/signin", body)
		f.app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Success bool          `json:"success"`
			Data    TokenResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.NotEmpty(t, resp.Data.Token)

		claims, err := VerifyToken(resp.Data.Token)
		require.NoError(t, err)
		assert.Equal(t, usr.ID.Hex(), claims.Subject)
		assert.Equal(t, usr.Role, claims.Role)
	})
}
