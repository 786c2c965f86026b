package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/blog-backend/internal/data/aggregates"
	"github.com/yungbote/blog-backend/internal/data/repos"
	types "github.com/yungbote/blog-backend/internal/domain"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

const (
	tokenTypeAccess = "access"
	tokenIssuer     = "blog-backend"
)

type TokenPair struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expires_in"`
}

// AuthService issues and verifies credentials. Access tokens are HS256 JWTs;
// refresh tokens are opaque, stored in user_token and rotated on every refresh.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*types.User, *TokenPair, error)
	Login(ctx context.Context, username, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, caller *types.Identity) error
	// ResolveCaller verifies an access token and loads its user.
	ResolveCaller(ctx context.Context, tokenString string) (*types.Identity, error)
}

type AuthConfig struct {
	SecretKey  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

type AuthServiceDeps struct {
	Log    *logger.Logger
	Runner aggregates.TxRunner
	Users  repos.UserRepo
	Tokens repos.UserTokenRepo
	Config AuthConfig
	Now    func() time.Time
}

type accessClaims struct {
	Type     string `json:"typ"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	deps AuthServiceDeps
	log  *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) (AuthService, error) {
	if strings.TrimSpace(deps.Config.SecretKey) == "" {
		return nil, fmt.Errorf("auth: secret key required")
	}
	if deps.Config.AccessTTL <= 0 {
		deps.Config.AccessTTL = 15 * time.Minute
	}
	if deps.Config.RefreshTTL <= 0 {
		deps.Config.RefreshTTL = 7 * 24 * time.Hour
	}
	if deps.Config.BcryptCost == 0 {
		deps.Config.BcryptCost = bcrypt.DefaultCost
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &authService{deps: deps, log: deps.Log.With("service", "AuthService")}, nil
}

func (s *authService) tx(ctx context.Context, op string, fn func(dbc dbctx.Context) error) error {
	return aggregates.MapError(op, s.deps.Runner.InTx(ctx, fn))
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*types.User, *TokenPair, error) {
	const op = "Auth.Register"
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return nil, nil, domainagg.Validation(op, domainagg.FieldUsername, "username is required")
	}
	if password == "" {
		return nil, nil, domainagg.Validation(op, domainagg.FieldPassword, "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.deps.Config.BcryptCost)
	if err != nil {
		return nil, nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}

	var (
		user *types.User
		pair *TokenPair
	)
	err = s.tx(ctx, op, func(dbc dbctx.Context) error {
		exists, err := s.deps.Users.UsernameExists(dbc, username)
		if err != nil {
			return err
		}
		if exists {
			return domainagg.Validation(op, domainagg.FieldUsername, "username already taken")
		}
		now := s.deps.Now()
		created, err := s.deps.Users.Create(dbc, []*types.User{{
			ID:        uuid.Must(uuid.NewV7()),
			Username:  username,
			Email:     email,
			Password:  string(hash),
			CreatedAt: now,
			UpdatedAt: now,
		}})
		if err != nil {
			return err
		}
		user = created[0]
		pair, err = s.issue(dbc, user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*types.User, *TokenPair, error) {
	const op = "Auth.Login"
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, domainagg.Validation(op, domainagg.FieldUsername, "username and password are required")
	}

	var (
		user *types.User
		pair *TokenPair
	)
	err := s.tx(ctx, op, func(dbc dbctx.Context) error {
		found, err := s.deps.Users.GetByUsername(dbc, username)
		if err != nil {
			return err
		}
		if found == nil || bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(password)) != nil {
			return domainagg.Validation(op, domainagg.FieldPassword, "invalid username or password")
		}
		user = found
		pair, err = s.issue(dbc, user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "Auth.Refresh"
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, domainagg.Validation(op, "refresh", "refresh token is required")
	}

	var pair *TokenPair
	err := s.tx(ctx, op, func(dbc dbctx.Context) error {
		rows, err := s.deps.Tokens.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return domainagg.NewSubjectError(domainagg.CodeUnauthenticated, op, "", "unknown refresh token")
		}
		existing := rows[0]
		n, err := s.deps.Tokens.DeleteByIDs(dbc, []uuid.UUID{existing.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			// A concurrent refresh consumed the token first.
			return domainagg.NewSubjectError(domainagg.CodeUnauthenticated, op, "", "refresh token already used")
		}
		if existing.Expired(s.deps.Now()) {
			return domainagg.NewSubjectError(domainagg.CodeUnauthenticated, op, "", "refresh token expired")
		}
		user, err := s.deps.Users.GetByID(dbc, existing.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domainagg.NewSubjectError(domainagg.CodeUnauthenticated, op, "", "user no longer exists")
		}
		pair, err = s.issue(dbc, user)
		return err
	})
	if domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		// Expired rows are removed even though the refresh fails.
		s.pruneExpired(ctx)
	}
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *authService) pruneExpired(ctx context.Context) {
	err := s.deps.Runner.InTx(ctx, func(dbc dbctx.Context) error {
		_, err := s.deps.Tokens.DeleteExpired(dbc, s.deps.Now())
		return err
	})
	if err != nil {
		s.log.Warn("prune expired refresh tokens failed", "error", err)
	}
}

func (s *authService) Logout(ctx context.Context, caller *types.Identity) error {
	const op = "Auth.Logout"
	if caller.IsAnonymous() {
		return domainagg.Unauthenticated(op)
	}
	return s.tx(ctx, op, func(dbc dbctx.Context) error {
		_, err := s.deps.Tokens.DeleteByUserIDs(dbc, []uuid.UUID{caller.ID})
		return err
	})
}

func (s *authService) ResolveCaller(ctx context.Context, tokenString string) (*types.Identity, error) {
	const op = "Auth.ResolveCaller"
	claims, err := s.parseAccess(tokenString)
	if err != nil {
		return nil, domainagg.NewSubjectError(domainagg.CodeUnauthenticated, op, "", err.Error())
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainagg.NewSubjectError(domainagg.CodeUnauthenticated, op, "", "invalid subject")
	}
	var identity *types.Identity
	err = s.tx(ctx, op, func(dbc dbctx.Context) error {
		user, err := s.deps.Users.GetByID(dbc, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domainagg.NewSubjectError(domainagg.CodeUnauthenticated, op, "", "user no longer exists")
		}
		identity = user.Identity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *authService) parseAccess(tokenString string) (*accessClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errors.New("missing token")
	}
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.deps.Config.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.deps.Now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeAccess {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

func (s *authService) issue(dbc dbctx.Context, user *types.User) (*TokenPair, error) {
	now := s.deps.Now()
	claims := accessClaims{
		Type:     tokenTypeAccess,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.deps.Config.AccessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.deps.Config.SecretKey))
	if err != nil {
		return nil, err
	}
	refresh := &types.UserToken{
		ID:           uuid.Must(uuid.NewV7()),
		UserID:       user.ID,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    now.Add(s.deps.Config.RefreshTTL),
		CreatedAt:    now,
	}
	if _, err := s.deps.Tokens.Create(dbc, []*types.UserToken{refresh}); err != nil {
		return nil, err
	}
	return &TokenPair{
		Access:    access,
		Refresh:   refresh.RefreshToken,
		ExpiresIn: int64(s.deps.Config.AccessTTL / time.Second),
	}, nil
}
