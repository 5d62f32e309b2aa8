package main

import (
	"net/http"
	"time"
)

const sessionCookieName = "_swipe_app_session"

func (app *application) sessionCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   app.config.session.cookieDomain,
		HttpOnly: true,
		Secure:   app.config.isProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	// Browsers drop SameSite=None cookies that are not Secure.
	if app.config.session.crossSite {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	if !expires.IsZero() {
		c.Expires = expires
		c.MaxAge = int(time.Until(expires).Seconds())
	}
	return c
}

func (app *application) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, app.sessionCookie(token, expires))
}

func (app *application) clearSessionCookie(w http.ResponseWriter) {
	c := app.sessionCookie("", time.Time{})
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}
