package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase struct {
	*base
	sessionTTL time.Duration
	cache      *sessionCache
}

// Register creates an account with the user role
func (uc *AuthUseCase) Register(ctx context.Context, input *model.Registration) (*model.User, error) {
	return uc.createUser(ctx, input, types.RoleUser)
}

// CreateAdmin bootstraps an administrator account
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, input *model.Registration) (*model.User, error) {
	return uc.createUser(ctx, input, types.RoleAdmin)
}

func (uc *AuthUseCase) createUser(ctx context.Context, input *model.Registration, role types.Role) (*model.User, error) {
	if err := uc.validate(types.RecordKindRegistration, input.Fields()); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user := &model.User{
		Email:        strings.TrimSpace(input.Email),
		FullName:     input.FullName,
		JobTitle:     input.JobTitle,
		Area:         input.Area,
		Phone:        input.Phone,
		Role:         role,
		Active:       true,
		PasswordHash: string(hash),
	}

	created, err := uc.repo.User().Create(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V(model.EmailKey, user.Email))
	}
	logging.From(ctx).Info("user registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Login checks the credentials of an active user and opens a session.
// Unknown email, wrong password and inactive account all fail the same way.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*model.Session, *model.User, error) {
	user, err := uc.repo.User().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil, goerr.Wrap(model.ErrUnauthorized, "invalid credentials")
		}
		return nil, nil, goerr.Wrap(err, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, goerr.Wrap(model.ErrUnauthorized, "invalid credentials")
	}
	if !user.Active {
		return nil, nil, goerr.Wrap(model.ErrUnauthorized, "invalid credentials")
	}

	session, err := model.NewSession(user, uc.now(), uc.sessionTTL)
	if err != nil {
		return nil, nil, err
	}
	if err := uc.repo.Session().Put(ctx, session); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to store session", goerr.V(model.UserIDKey, user.ID))
	}

	return session, user, nil
}

// ValidateSession resolves session cookies to the principal of a request
func (uc *AuthUseCase) ValidateSession(ctx context.Context, sessionID, secret string) (*model.AuthContext, error) {
	now := uc.now()

	session, ok := uc.cache.get(sessionID, now)
	if !ok {
		s, err := uc.repo.Session().Get(ctx, sessionID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, goerr.Wrap(model.ErrUnauthorized, "unknown session")
			}
			return nil, goerr.Wrap(err, "failed to get session")
		}
		session = s
	}

	if subtle.ConstantTimeCompare([]byte(session.Secret), []byte(secret)) != 1 {
		return nil, goerr.Wrap(model.ErrUnauthorized, "invalid session secret")
	}
	if !session.IsValid(now) {
		uc.cache.remove(sessionID)
		if err := uc.repo.Session().Delete(ctx, sessionID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to delete expired session", goerr.V("session_id", sessionID))
		}
		return nil, goerr.Wrap(model.ErrUnauthorized, "session expired")
	}

	user, err := uc.repo.User().Get(ctx, session.UserID)
	if err != nil {
		return nil, goerr.Wrap(model.ErrUnauthorized, "session user not found", goerr.V(model.UserIDKey, session.UserID))
	}
	if !user.Active {
		uc.cache.remove(sessionID)
		return nil, goerr.Wrap(model.ErrUnauthorized, "user is inactive", goerr.V(model.UserIDKey, user.ID))
	}
	uc.cache.set(session, now)

	return &model.AuthContext{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: session.ID,
	}, nil
}

// Logout deletes the session
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	uc.cache.remove(sessionID)
	if err := uc.repo.Session().Delete(ctx, sessionID); err != nil && !errors.Is(err, model.ErrNotFound) {
		return goerr.Wrap(err, "failed to delete session", goerr.V("session_id", sessionID))
	}
	return nil
}

// Me returns the user of the current request
func (uc *AuthUseCase) Me(ctx context.Context) (*model.User, error) {
	auth, ok := model.GetAuthContext(ctx)
	if !ok {
		return nil, goerr.Wrap(model.ErrUnauthorized, "no signed-in user")
	}
	user, err := uc.repo.User().Get(ctx, auth.UserID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get current user", goerr.V(model.UserIDKey, auth.UserID))
	}
	return user, nil
}

func (uc *AuthUseCase) ListUsers(ctx context.Context, opts ...interfaces.ListOption) ([]*model.User, error) {
	users, err := uc.repo.User().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	return users, nil
}

// ChangeRole sets the role of a user. Admins cannot demote themselves.
func (uc *AuthUseCase) ChangeRole(ctx context.Context, userID string, role types.Role) (*model.User, error) {
	if !role.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidInput, "unknown role", goerr.V(model.ValueKey, role))
	}
	if userID == model.ActorID(ctx) && role != types.RoleAdmin {
		return nil, goerr.Wrap(model.ErrForbidden, "cannot demote yourself", goerr.V(model.UserIDKey, userID))
	}

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(model.UserIDKey, userID))
	}
	user.Role = role

	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update role", goerr.V(model.UserIDKey, userID))
	}
	uc.cache.removeUser(userID)
	return updated, nil
}

// Deactivate disables an account; its sessions stop validating
func (uc *AuthUseCase) Deactivate(ctx context.Context, userID string) (*model.User, error) {
	if userID == model.ActorID(ctx) {
		return nil, goerr.Wrap(model.ErrForbidden, "cannot deactivate yourself", goerr.V(model.UserIDKey, userID))
	}

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(model.UserIDKey, userID))
	}
	user.Active = false

	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to deactivate user", goerr.V(model.UserIDKey, userID))
	}
	uc.cache.removeUser(userID)
	return updated, nil
}
