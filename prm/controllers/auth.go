package controllers

import (
	"context"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/config"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/types"

	"github.com/golang-jwt/jwt/v5"
)

// Hardcoded users for demo sign-in.
var demoUsers = map[string]string{
	"admin":  "secret",
	"demo":   "demo",
	"ramsha": "pass123",
}

type AuthController struct {
	userDAO *dao.UserDAO
	convDAO *dao.ConversationDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.UserDAO, convDAO *dao.ConversationDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		convDAO: convDAO,
		cfg:     cfg,
	}
}

// SignIn checks demo credentials, makes sure the user row exists, starts a
// fresh conversation for the session and issues a JWT.
func (c *AuthController) SignIn(ctx context.Context, req types.SignInRequest) (*types.User, error) {
	expected, ok := demoUsers[req.Username]
	if !ok || expected != req.Password {
		return nil, ErrInvalidCredentials
	}
	if _, err := c.userDAO.EnsureUser(ctx, req.Username); err != nil {
		return nil, err
	}
	conv, err := c.convDAO.Create(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	token, err := c.issueToken(req.Username)
	if err != nil {
		return nil, err
	}
	return &types.User{
		ID:             req.Username,
		Username:       req.Username,
		ConversationID: conv.ID,
		Token:          token,
	}, nil
}

func (c *AuthController) issueToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}
