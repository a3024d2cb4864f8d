package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/mesh05/Techolution-PRM/prm/config"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/types"
	"github.com/mesh05/Techolution-PRM/prm/utils/logging"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---

func setupAuth(t *testing.T) (*AuthController, *gorm.DB) {
	logging.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	cfg := config.Config{JWTSecret: "test-secret"}
	return NewAuthController(dao.NewUserDAO(db), dao.NewConversationDAO(db), cfg), db
}

// --- SignIn ---

func TestSignInIssuesSessionAndToken(t *testing.T) {
	ac, _ := setupAuth(t)
	ctx := context.Background()

	user, err := ac.SignIn(ctx, types.SignInRequest{Username: "demo", Password: "demo"})
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if user.Username != "demo" || user.ID != "demo" {
		t.Errorf("unexpected user: %+v", user)
	}
	if len(user.ConversationID) != 32 {
		t.Errorf("expected 32-char conversation id, got %q", user.ConversationID)
	}

	token, err := jwt.Parse(user.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["username"] != "demo" {
		t.Errorf("unexpected claims: %+v", token.Claims)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	ac, _ := setupAuth(t)
	ctx := context.Background()

	cases := []types.SignInRequest{
		{Username: "demo", Password: "wrong"},
		{Username: "nobody", Password: "demo"},
		{Username: "", Password: ""},
	}
	for _, req := range cases {
		if _, err := ac.SignIn(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for %+v, got %v", req, err)
		}
	}
}

func TestSignInFreshConversationPerSession(t *testing.T) {
	ac, _ := setupAuth(t)
	ctx := context.Background()

	u1, err := ac.SignIn(ctx, types.SignInRequest{Username: "ramsha", Password: "pass123"})
	if err != nil {
		t.Fatalf("first sign-in failed: %v", err)
	}
	u2, err := ac.SignIn(ctx, types.SignInRequest{Username: "ramsha", Password: "pass123"})
	if err != nil {
		t.Fatalf("second sign-in failed: %v", err)
	}
	if u1.ConversationID == u2.ConversationID {
		t.Errorf("each sign-in should start its own conversation")
	}
}
