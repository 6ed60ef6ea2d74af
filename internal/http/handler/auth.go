package handler

import (
	"context"
	"net/http"
	"strings"

	"shree-admin/internal/audit"
	"shree-admin/internal/auth"
	"shree-admin/internal/gate"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	base
	authenticator auth.Authenticator
	cookies       auth.CookieOptions
}

func NewAuthHandler(authenticator auth.Authenticator, workspaces Workspaces, recorder audit.Recorder, cookies auth.CookieOptions) *AuthHandler {
	return &AuthHandler{
		base:          newBase(workspaces, recorder),
		authenticator: authenticator,
		cookies:       cookies,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// LoginView describes the sign-in form to the rendering layer.
type LoginView struct {
	View   string   `json:"view"`
	Action string   `json:"action"`
	Fields []string `json:"fields"`
}

func (h *AuthHandler) LoginView(c echo.Context) error {
	return c.JSON(http.StatusOK, LoginView{
		View:   "login",
		Action: gate.LoginPath,
		Fields: []string{"username", "password"},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, msgLoginRequired)
	}

	token, err := h.authenticator.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.audit.Record(c, audit.ResourceTypeSession, "", audit.ActionLogin, audit.StatusFailure, msgLoginFailed)
		return handleHTTPError(c, err)
	}

	credential := auth.NormalizeCredential(token)
	if credential == "" {
		h.audit.Record(c, audit.ResourceTypeSession, "", audit.ActionLogin, audit.StatusFailure, msgLoginFailed)
		return respondError(c, http.StatusBadGateway, msgLoginFailed)
	}

	c.SetCookie(auth.NewSessionCookie(credential, h.cookies))
	auth.SetCredential(c, credential)

	// Warm the lists so the first dashboard screen does not wait on them.
	ws := h.workspaces.Open(credential)
	go ws.RefreshAll(context.WithoutCancel(c.Request().Context()))

	h.audit.Record(c, audit.ResourceTypeSession, auth.GetSessionID(c), audit.ActionLogin, audit.StatusSuccess, "")
	return c.JSON(http.StatusOK, LoginResponse{
		Success:  true,
		Message:  msgLoginSuccessful,
		Redirect: gate.HomePath,
	})
}

// Logout clears the cookie and drops the workspace. It is also the target
// of the tab-close beacon, so it never reads the body.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ExpiredSessionCookie(h.cookies))

	if credential, err := auth.GetCredential(c); err == nil {
		h.audit.Record(c, audit.ResourceTypeSession, auth.GetSessionID(c), audit.ActionLogout, audit.StatusSuccess, "")
		h.workspaces.Remove(credential)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success:  true,
		Message:  msgLoggedOut,
		Redirect: gate.LoginPath,
	})
}
