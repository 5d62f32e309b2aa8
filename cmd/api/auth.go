package main

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/heart0018/OriginalProduct/internal/auth"
)

type googleAuthPayload struct {
	IDToken    string `json:"id_token"`
	Credential string `json:"credential"`
}

// googleAuthHandler godoc
//
//	@Summary		Sign in with Google
//	@Description	Verifies a Google ID token, finds or creates the user and sets the session cookie.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		googleAuthPayload	true	"Google ID token"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	errorBody	"id_token missing"
//	@Failure		401		{object}	errorBody	"verification_failed"
//	@Failure		500		{object}	errorBody	"server_misconfigured or internal_error"
//	@Router			/auth/google [post]
func (app *application) googleAuthHandler(w http.ResponseWriter, r *http.Request) {
	token, err := tokenFromRequest(w, r)
	if err != nil {
		app.badRequestResponse(w, r, "invalid_request", err)
		return
	}

	ctx := r.Context()

	user, created, err := app.login.Login(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			app.badRequestResponse(w, r, "missing_token", errors.New("id_token is required"))
		case errors.Is(err, auth.ErrVerification):
			app.unauthorizedErrorResponse(w, r, "verification_failed", err)
		case errors.Is(err, auth.ErrMisconfigured):
			app.misconfiguredResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if created {
		app.logger.Infow("user created", "user_id", user.ID)
	}

	// The user is signed in even if the session cannot be stored.
	sessionToken, session, err := app.sessions.Issue(ctx, user.ID)
	if err != nil {
		app.logger.Warnw("session not established", "user_id", user.ID, "error", err.Error())
	} else {
		app.setSessionCookie(w, sessionToken, session.ExpiresAt)
	}

	if err := writeJSON(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// tokenFromRequest accepts the token as id_token or credential, in a JSON
// body, a form body or the query string.
func tokenFromRequest(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var payload googleAuthPayload
		if err := readJSON(w, r, &payload); err != nil && !errors.Is(err, io.EOF) {
			return "", errors.New("request body is not valid JSON")
		}
		if t := strings.TrimSpace(payload.IDToken); t != "" {
			return t, nil
		}
		if t := strings.TrimSpace(payload.Credential); t != "" {
			return t, nil
		}
	}

	for _, key := range []string{"id_token", "credential"} {
		// FormValue also covers the query string.
		if t := strings.TrimSpace(r.FormValue(key)); t != "" {
			return t, nil
		}
	}
	return "", nil
}
