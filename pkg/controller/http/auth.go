package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
)

// AuthUseCase is the part of the auth use case the HTTP layer calls
type AuthUseCase interface {
	Register(ctx context.Context, input *model.Registration) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.Session, *model.User, error)
	ValidateSession(ctx context.Context, sessionID, secret string) (*model.AuthContext, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context) (*model.User, error)
	ListUsers(ctx context.Context, opts ...interfaces.ListOption) ([]*model.User, error)
	ChangeRole(ctx context.Context, userID string, role types.Role) (*model.User, error)
	Deactivate(ctx context.Context, userID string) (*model.User, error)
}

type successResponse struct {
	Success bool `json:"success"`
}

func registerHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		user, err := authUC.Register(r.Context(), req.toModel())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toUser(user))
	}
}

func loginHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		session, user, err := authUC.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		setSessionCookies(w, r, session)
		logging.From(r.Context()).Info("user logged in", "user_id", user.ID)
		writeJSON(r.Context(), w, http.StatusOK, toUser(user))
	}
}

func logoutHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionIDCookie); err == nil && c.Value != "" {
			if err := authUC.Logout(r.Context(), c.Value); err != nil {
				writeError(r.Context(), w, goerr.Wrap(err, "failed to logout"))
				return
			}
		}

		clearSessionCookies(w, r)
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func meHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := authUC.Me(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUser(user))
	}
}

func listUsersHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		users, err := authUC.ListUsers(r.Context(), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(users, toUser))
	}
}

func changeRoleHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req roleRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		role, err := parseWith("role", req.Role, types.ParseRole)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		user, err := authUC.ChangeRole(r.Context(), pathUserID(r), role)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUser(user))
	}
}

func deactivateHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := authUC.Deactivate(r.Context(), pathUserID(r))
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUser(user))
	}
}

func setSessionCookies(w http.ResponseWriter, r *http.Request, session *model.Session) {
	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	for name, value := range map[string]string{
		sessionIDCookie:     session.ID,
		sessionSecretCookie: session.Secret,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   maxAge,
		})
	}
}

func clearSessionCookies(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{sessionIDCookie, sessionSecretCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

// isAuthError reports whether err should clear the client's cookies
func isAuthError(err error) bool {
	return errors.Is(err, model.ErrUnauthorized)
}
