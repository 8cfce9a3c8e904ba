package handler

import (
	"log/slog"
	"net/http"

	"github.com/yaronsh/mediahub/internal/auth"
	"github.com/yaronsh/mediahub/internal/service"
)

// SettingsHandler exposes the authenticated self-service profile
// endpoints. All routes sit behind auth.RequireAuth, so the verified
// claims are always present in the request context.
//
//	GET  /api/userinfo          → profile read
//	PUT  /api/updatesettings    → sparse settings update
//	POST /api/userimage/{image} → profile or theme image update
type SettingsHandler struct {
	settings *service.SettingsService
	logger   *slog.Logger
}

func NewSettingsHandler(settings *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// HandleUserInfo returns the acting user's display profile.
//
// HTTP: GET /api/userinfo
func (h *SettingsHandler) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.settings.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		FullName string  `json:"fullName"`
		Bio      *string `json:"bio"`
	}{
		FullName: user.FullName,
		Bio:      user.Bio,
	})
}

// HandleUpdateSettings applies a sparse settings update.
//
// HTTP: PUT /api/updatesettings
// Body: any subset of {"bio", "fullName", "username",
// "password", "newPassword", "retypePassword"}.
//
// Pointer fields keep absence distinguishable from emptiness: a field
// missing from the JSON stays nil and untouched, while `"bio": ""`
// arrives as a non-nil empty string and clears the bio.
func (h *SettingsHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req struct {
		Bio            *string `json:"bio"`
		FullName       *string `json:"fullName"`
		Username       *string `json:"username"`
		Password       *string `json:"password"`
		NewPassword    *string `json:"newPassword"`
		RetypePassword *string `json:"retypePassword"`
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.settings.UpdateSettings(r.Context(), claims.UserID, service.SettingsInput{
		Bio:            req.Bio,
		FullName:       req.FullName,
		Username:       req.Username,
		Password:       req.Password,
		NewPassword:    req.NewPassword,
		RetypePassword: req.RetypePassword,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleUpdateImage sets the profile or theme image reference.
//
// HTTP: POST /api/userimage/{image}  (image is profileImage or themeImage)
// Body: {"imgurl"}
func (h *SettingsHandler) HandleUpdateImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req struct {
		ImgURL string `json:"imgurl"`
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	kind := r.PathValue("image")
	if err := h.settings.UpdateImage(r.Context(), claims.UserID, kind, req.ImgURL); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
