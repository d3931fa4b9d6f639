package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-api/internal/service"
	"github.com/BuzzLyutic/todo-api/pkg/respond"
)

// AccessTokenCookie is the cookie set on login and accepted by RequireAuth.
const AccessTokenCookie = "access_token"

type AuthHandler struct {
	service      *service.AuthService
	logger       *zap.Logger
	cookieSecure bool
}

func NewAuthHandler(srv *service.AuthService, logger *zap.Logger, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		service:      srv,
		logger:       logger,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	user, err := h.service.Register(r.Context(), deref(req.Username), deref(req.Password))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	h.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	respond.JSON(w, r, http.StatusCreated, map[string]string{"username": user.Username})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	session, err := h.service.Login(r.Context(), deref(req.Username), deref(req.Password))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info("user logged in", zap.Int64("user_id", session.UserID))
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": "Login successful"})
}
