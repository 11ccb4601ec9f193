package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"cartflow/pkg/otel"
	"cartflow/pkg/user"
)

type ctxKey int

const userKey ctxKey = 1

// credentials represents register/login credentials.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registerHandler creates a new account.
// @Summary Register
// @Accept json
// @Produce json
// @Param creds body credentials true "Credentials"
// @Success 201
// @Router /register [post]
func registerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "registerHandler")
	defer span.End()

	var req credentials
	if err := decodeJSON(r, &req); err != nil || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid credentials", "")
		return
	}
	u, err := user.New(uuid.NewString(), req.Username, req.Password)
	if err != nil {
		log.Error(ctx, "hash password", "error", err)
		respondError(w, http.StatusInternalServerError, "register failed", "")
		return
	}
	if err := users.Create(ctx, u); err != nil {
		if err == user.ErrDuplicate {
			respondError(w, http.StatusConflict, "duplicate username", "")
			return
		}
		log.Error(ctx, "create user", "error", err)
		respondError(w, http.StatusInternalServerError, "register failed", "")
		return
	}
	respond(w, http.StatusCreated, u)
}

// loginHandler checks credentials and creates a session.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Produce json
// @Param creds body credentials true "Credentials"
// @Success 200
// @Router /login [post]
func loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req credentials
	if err := decodeJSON(r, &req); err != nil || req.Username == "" {
		respondError(w, http.StatusBadRequest, "invalid credentials", "")
		return
	}
	u, err := users.GetByUsername(ctx, req.Username)
	if err != nil || !u.CheckPassword(req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	sid := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := redisClient.Set(ctx, "session:"+sid, u.ID, cfg.SessionTTL).Err(); err != nil {
		log.Error(ctx, "create session", "error", err)
		respondError(w, http.StatusInternalServerError, "session error", "")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(cfg.SessionTTL),
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusOK)
}

// authMiddleware ensures a valid session exists and stores the session
// user's id in the context.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_id")
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		userID, err := redisClient.Get(r.Context(), "session:"+c.Value).Result()
		if err != nil || userID == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionUser returns the authenticated user's id from the context.
func sessionUser(ctx context.Context) string {
	id, _ := ctx.Value(userKey).(string)
	return id
}
