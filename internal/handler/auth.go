package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yaronsh/mediahub/internal/service"
)

// AuthHandler exposes the public authentication endpoints:
//
//	POST /auth/register        → create a local account
//	POST /auth/login           → password login, returns a session token
//	POST /auth/google          → federated login (pre-verified identity)
//	POST /auth/passwordreset   → mail a reset link
//	POST /auth/passwordupdate  → set the new password from the reset link
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// userInfoResponse is the login success body. The field names are part
// of the client contract.
type userInfoResponse struct {
	UserInfo struct {
		Username  string `json:"username"`
		AuthToken string `json:"auth_token"`
	} `json:"UserInfo"`
}

func newUserInfoResponse(res *service.AuthResult) userInfoResponse {
	var body userInfoResponse
	body.UserInfo.Username = res.Username
	body.UserInfo.AuthToken = res.Token
	return body
}

// HandleRegister creates a local account.
//
// HTTP: POST /auth/register
// Body: {"email", "username", "password", "fullName"}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Sign up successfully")
}

// HandleLogin authenticates by password.
//
// HTTP: POST /auth/login
// Body: {"username", "password"} — username accepts the email too.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	res, err := h.auth.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserInfoResponse(res))
}

// HandleGoogleLogin signs in a federated identity. The request body is
// trusted to carry an email the upstream provider already verified —
// this route must only be reachable through that verification.
//
// HTTP: POST /auth/google
// Body: {"email", "name"}
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	res, err := h.auth.FederatedLogin(r.Context(), service.FederatedInput{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserInfoResponse(res))
}

// HandlePasswordReset mails a reset link.
//
// HTTP: POST /auth/passwordreset
// Body: {"email"}
func (h *AuthHandler) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	if err := h.auth.InitiatePasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Email send")
}

// HandlePasswordUpdate sets the new password submitted from the reset
// link.
//
// HTTP: POST /auth/passwordupdate
// Body: {"id", "password", "passwordConfirm"}
func (h *AuthHandler) HandlePasswordUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID              string `json:"id"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.auth.CompletePasswordReset(r.Context(), service.CompleteResetInput{
		UserID:          req.ID,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "The password updated successfully")
}

// decodeJSON decodes the request body into dst, answering 400 on
// malformed JSON. Returns false when the request has been answered.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return false
	}
	return true
}
