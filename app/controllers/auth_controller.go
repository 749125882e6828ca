package controllers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/shashiranjanraj/merchdesk/pkg/auth"
	"github.com/shashiranjanraj/merchdesk/pkg/logger"
	"github.com/shashiranjanraj/merchdesk/pkg/middleware"
	"github.com/shashiranjanraj/merchdesk/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// SignIn exchanges credentials for a session token. The token is returned
// in the body and mirrored in an HttpOnly cookie for browser clients.
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	errs := map[string]string{}
	if body.Email == "" {
		errs["email"] = "email is required"
	}
	if body.Password == "" {
		errs["password"] = "password is required"
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	session, err := c.service.SignIn(r.Context(), body.Email, body.Password, clientIP(r))
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("signin failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Sign in failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.Success(w, session)
}

// SignOut closes the session's audit row and clears the cookie.
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	if err := c.service.SignOut(r.Context(), claims.AdminID); err != nil {
		logger.WithCtx(r.Context()).Error("signout failed", "admin_id", claims.AdminID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Sign out failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.Success(w, map[string]string{"message": "signed out"})
}

// Me returns the acting admin's account.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	admin, err := c.service.AdminByID(claims.AdminID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if admin == nil {
		// token outlived the account
		response.Unauthorized(w)
		return
	}
	response.Success(w, admin)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
