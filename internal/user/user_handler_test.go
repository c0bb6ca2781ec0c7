package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/user"
	usererrors "go-leave/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	loginFn          func(ctx context.Context, email, password string) (user.AuthResponse, error)
	getMeFn          func(ctx context.Context, userID string) (user.UserResponse, error)
	createEmployeeFn func(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error)
	getEmployeesFn   func(ctx context.Context) ([]user.UserResponse, error)
	getEmployeeFn    func(ctx context.Context, id string) (user.UserResponse, error)
	updateProfileFn  func(ctx context.Context, actorID, actorRole, id string, req user.UpdateProfileRequest) (user.UserResponse, error)
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (user.AuthResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeUserService) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	return f.getMeFn(ctx, userID)
}

func (f *fakeUserService) CreateEmployee(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error) {
	return f.createEmployeeFn(ctx, req)
}

func (f *fakeUserService) GetEmployees(ctx context.Context) ([]user.UserResponse, error) {
	return f.getEmployeesFn(ctx)
}

func (f *fakeUserService) GetEmployee(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getEmployeeFn(ctx, id)
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, actorID, actorRole, id string, req user.UpdateProfileRequest) (user.UserResponse, error) {
	return f.updateProfileFn(ctx, actorID, actorRole, id, req)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func performUserRequest(t *testing.T, svc user.Service, actorID, actorRole, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := user.NewHandler(svc)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", actorID)
		c.Set("role", actorRole)
	})
	router.POST("/auth/login", h.Login)
	router.GET("/auth/me", h.Me)
	router.POST("/users/employees", h.CreateEmployee)
	router.GET("/users/employees", h.GetEmployees)
	router.GET("/users/employees/:id", h.GetEmployee)
	router.PUT("/users/:id", h.UpdateProfile)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("success returns token envelope", func(t *testing.T) {
		svc := &fakeUserService{
			loginFn: func(ctx context.Context, email, password string) (user.AuthResponse, error) {
				assert.Equal(t, "nora.blake@acme.io", email)
				return user.AuthResponse{
					AccessToken: "token-123",
					User:        user.UserResponse{ID: uuid.New().String(), Role: user.RoleEmployee},
				}, nil
			},
		}

		rec := performUserRequest(t, svc, "", "", http.MethodPost, "/auth/login", gin.H{
			"email":    "nora.blake@acme.io",
			"password": "s3cret",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Ok)

		var resp user.AuthResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, "token-123", resp.AccessToken)
	})

	t.Run("negative bad credentials map to 401", func(t *testing.T) {
		svc := &fakeUserService{
			loginFn: func(ctx context.Context, email, password string) (user.AuthResponse, error) {
				return user.AuthResponse{}, usererrors.ErrInvalidCredentials
			},
		}

		rec := performUserRequest(t, svc, "", "", http.MethodPost, "/auth/login", gin.H{
			"email":    "nora.blake@acme.io",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Ok)
	})

	t.Run("negative malformed email rejected by binding", func(t *testing.T) {
		svc := &fakeUserService{
			loginFn: func(ctx context.Context, email, password string) (user.AuthResponse, error) {
				t.Fatal("service must not be reached")
				return user.AuthResponse{}, nil
			},
		}

		rec := performUserRequest(t, svc, "", "", http.MethodPost, "/auth/login", gin.H{
			"email":    "not-an-email",
			"password": "s3cret",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandler_CreateEmployee(t *testing.T) {
	managerID := uuid.New().String()

	t.Run("success returns 201", func(t *testing.T) {
		svc := &fakeUserService{
			createEmployeeFn: func(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error) {
				return user.UserResponse{
					ID:    uuid.New().String(),
					Email: req.Email,
					Role:  user.RoleEmployee,
				}, nil
			},
		}

		rec := performUserRequest(t, svc, managerID, user.RoleManager, http.MethodPost, "/users/employees", gin.H{
			"name":         "Omar Reyes",
			"email":        "omar.reyes@acme.io",
			"department":   "Sales",
			"leave_annual": 25,
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Ok)
	})

	t.Run("negative duplicate email maps to 409", func(t *testing.T) {
		svc := &fakeUserService{
			createEmployeeFn: func(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrEmailTaken
			},
		}

		rec := performUserRequest(t, svc, managerID, user.RoleManager, http.MethodPost, "/users/employees", gin.H{
			"name":  "Omar Reyes",
			"email": "omar.reyes@acme.io",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("credentials mail failure maps to 502", func(t *testing.T) {
		svc := &fakeUserService{
			createEmployeeFn: func(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error) {
				return user.UserResponse{Email: req.Email}, usererrors.ErrCredentialsMailFailed
			},
		}

		rec := performUserRequest(t, svc, managerID, user.RoleManager, http.MethodPost, "/users/employees", gin.H{
			"name":  "Omar Reyes",
			"email": "omar.reyes@acme.io",
		})

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "NOTIFICATION_FAILED", env.Error.Code)
	})
}

func TestUserHandler_Me(t *testing.T) {
	userID := uuid.New().String()

	svc := &fakeUserService{
		getMeFn: func(ctx context.Context, gotID string) (user.UserResponse, error) {
			assert.Equal(t, userID, gotID)
			return user.UserResponse{ID: gotID, Name: "Nora Blake"}, nil
		},
	}

	rec := performUserRequest(t, svc, userID, user.RoleEmployee, http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var resp user.UserResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, userID, resp.ID)
}
