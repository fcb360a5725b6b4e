package user

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/types/user"
)

type stubUserRepo struct {
	users       map[string]*user.User
	errOnCreate error
	errOnFind   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*user.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, u *user.User) error {
	if r.errOnCreate != nil {
		return r.errOnCreate
	}
	if _, exists := r.users[u.Login]; exists {
		return ErrUserExists
	}
	u.ID = int64(len(r.users) + 1)
	r.users[u.Login] = u
	return nil
}

func (r *stubUserRepo) FindByLogin(ctx context.Context, login string) (*user.User, error) {
	if r.errOnFind != nil {
		return nil, r.errOnFind
	}
	u, ok := r.users[login]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func TestServiceRegister(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, []byte("secret"), time.Hour)

	t.Run("successful registration", func(t *testing.T) {
		u, err := svc.Register(context.Background(), "login1", "password123")
		if err != nil {
			t.Fatal(err)
		}
		if u.Login != "login1" {
			t.Errorf("expected login 'login1', got '%s'", u.Login)
		}
		if u.ID == 0 {
			t.Errorf("expected assigned ID, got 0")
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) != nil {
			t.Error("password hash does not match original password")
		}
	})

	t.Run("password too short", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "login2", "short")
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}
	})

	t.Run("user already exists", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "login1", "anotherpass")
		if !errors.Is(err, ErrUserExists) {
			t.Errorf("expected ErrUserExists, got %v", err)
		}
	})
}

func TestServiceAuthenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, []byte("secret"), time.Hour)

	if _, err := svc.Register(context.Background(), "buyer", "password123"); err != nil {
		t.Fatal(err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Authenticate(context.Background(), "buyer", "password123")
		if err != nil {
			t.Fatal(err)
		}
		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		if err != nil || !parsed.Valid {
			t.Fatalf("token does not parse: %v", err)
		}
		if claims.Subject != "buyer" {
			t.Errorf("expected subject 'buyer', got '%s'", claims.Subject)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "buyer", "wrongpass")
		if !errors.Is(err, ErrInvalidCreds) {
			t.Errorf("expected ErrInvalidCreds, got %v", err)
		}
	})

	t.Run("unknown login", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "ghost", "password123")
		if !errors.Is(err, ErrInvalidCreds) {
			t.Errorf("expected ErrInvalidCreds, got %v", err)
		}
	})
}

func TestHandlerRegister(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, []byte("secret"), time.Hour)
	h := NewHandler(svc)

	t.Run("success sets bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"login":"buyer","password":"password123"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if auth := rec.Header().Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("expected Authorization header, got %q", auth)
		}
	})

	t.Run("duplicate login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"login":"buyer","password":"password123"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("short password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"login":"other","password":"short"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHandlerLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, []byte("secret"), time.Hour)
	h := NewHandler(svc)

	if _, err := svc.Register(context.Background(), "buyer", "password123"); err != nil {
		t.Fatal(err)
	}

	t.Run("valid login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login",
			strings.NewReader(`{"login":"buyer","password":"password123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if auth := rec.Header().Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("expected Authorization header, got %q", auth)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login",
			strings.NewReader(`{"login":"buyer","password":"nope"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
