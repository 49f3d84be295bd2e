package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/farxc/listagem-empenhos/internal/auth"
	"github.com/farxc/listagem-empenhos/internal/response"
	"github.com/farxc/listagem-empenhos/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

type LoginResponse = response.APIResponse[*store.User]

// @Summary		Login
// @Description	Validates a username/password pair and returns the user profile.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		object{username:string,password:string}	true	"Credentials"
// @Success		200			{object}	LoginResponse							"Authenticated"
// @Failure		401			{object}	response.ErrorResponse					"Invalid credentials"
// @Router			/auth/login [post]
func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := app.auth.Verify(r.Context(), input.Username, input.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSONError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to verify credentials: "+err.Error())
		return
	}

	resp := &LoginResponse{
		Success: true,
		Data:    user,
		Message: "Authenticated",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Register user
// @Description	Creates a new user. Admin only.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Param			user	body		object{username:string,password:string,role:string,department:string}	true	"User details"
// @Success		201		{object}	response.APIResponse[string]											"User created"
// @Failure		400		{object}	response.ErrorResponse													"Invalid payload"
// @Failure		409		{object}	response.ErrorResponse													"User already exists"
// @Router			/auth/register [post]
func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		Department string `json:"department"`
	}

	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if input.Role == "" {
		input.Role = store.RoleUser
	}
	if input.Role != store.RoleAdmin && input.Role != store.RoleUser {
		writeJSONError(w, http.StatusBadRequest, "unknown role: "+input.Role)
		return
	}

	err := app.auth.Register(r.Context(), input.Username, input.Password, input.Role, input.Department)
	if errors.Is(err, auth.ErrUserExists) {
		writeJSONError(w, http.StatusConflict, "user already exists")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := &response.APIResponse[string]{
		Success: true,
		Message: "User created",
	}

	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// withUser authenticates the request with HTTP Basic credentials and puts
// the resolved user on the request context.
func (app *application) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="listagem-empenhos"`)
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := app.auth.Verify(r.Context(), username, password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to verify credentials: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestUser(r).Role != store.RoleAdmin {
			writeJSONError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestUser returns the authenticated user. Only valid below withUser.
func requestUser(r *http.Request) *store.User {
	return r.Context().Value(userContextKey).(*store.User)
}
