package main

import (
	"errors"
	"net/http"

	"github.com/heart0018/OriginalProduct/internal/auth"
	"github.com/heart0018/OriginalProduct/internal/domain/users"
)

type notAuthenticated struct {
	Authenticated bool `json:"authenticated"`
}

// currentSession reads and validates the session cookie. A nil session with
// a nil error means the request carries no usable session.
func (app *application) currentSession(r *http.Request) (*auth.Session, error) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	s, err := app.sessions.Validate(r.Context(), c.Value)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) || errors.Is(err, auth.ErrSessionDisabled) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// showSessionHandler godoc
//
//	@Summary		Current session
//	@Description	Returns the signed-in user, renewing the session cookie when it is past half its lifetime.
//	@Tags			authentication
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	notAuthenticated
//	@Router			/session [get]
func (app *application) showSessionHandler(w http.ResponseWriter, r *http.Request) {
	s, err := app.currentSession(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if s == nil {
		writeJSON(w, http.StatusUnauthorized, notAuthenticated{Authenticated: false})
		return
	}

	ctx := r.Context()

	user, err := app.store.Users.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.clearSessionCookie(w)
			writeJSON(w, http.StatusUnauthorized, notAuthenticated{Authenticated: false})
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if app.sessions.NeedsRenewal(s) {
		token, renewed, err := app.sessions.Issue(ctx, user.ID)
		if err != nil {
			app.logger.Warnw("session renewal failed", "user_id", user.ID, "error", err.Error())
		} else {
			if err := app.sessions.Revoke(ctx, s); err != nil {
				app.logger.Warnw("revoking renewed session failed", "session_id", s.ID, "error", err.Error())
			}
			app.setSessionCookie(w, token, renewed.ExpiresAt)
		}
	}

	if err := writeJSON(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// destroySessionHandler godoc
//
//	@Summary	Sign out
//	@Tags		authentication
//	@Success	204
//	@Router		/session [delete]
func (app *application) destroySessionHandler(w http.ResponseWriter, r *http.Request) {
	s, err := app.currentSession(r)
	if err != nil {
		app.logger.Warnw("reading session on sign out", "error", err.Error())
	}
	if s != nil {
		if err := app.sessions.Revoke(r.Context(), s); err != nil {
			app.logger.Warnw("revoking session failed", "session_id", s.ID, "error", err.Error())
		}
	}

	app.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
