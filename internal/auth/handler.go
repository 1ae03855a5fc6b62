package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	JWT     *JWTManager
	Users   *UserRepo
	Refresh *RefreshRepo
}

type Handler struct {
	deps Dependencies
}

func NewHandler(d Dependencies) *Handler {
	return &Handler{deps: d}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	u, err := h.deps.Users.ByEmail(c.Request.Context(), req.Email)
	if err != nil || !u.IsActive || !CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	access, accessExp, err := h.deps.JWT.SignAccess(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token sign failed"})
		return
	}
	refresh, refreshExp, err := h.deps.JWT.SignRefresh(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token sign failed"})
		return
	}
	if err := h.deps.Refresh.Store(c.Request.Context(), u.ID, HashToken(refresh), refreshExp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session store failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":       access,
		"access_expires_at":  accessExp,
		"refresh_token":      refresh,
		"refresh_expires_at": refreshExp,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	claims, err := h.deps.JWT.ParseRefresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	oldHash := HashToken(req.RefreshToken)
	ok, err := h.deps.Refresh.IsValid(c.Request.Context(), claims.UserID, oldHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token revoked or expired"})
		return
	}

	access, accessExp, err := h.deps.JWT.SignAccess(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token sign failed"})
		return
	}
	refresh, refreshExp, err := h.deps.JWT.SignRefresh(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token sign failed"})
		return
	}

	// rotate: revoke the presented token, store the new one
	_ = h.deps.Refresh.Revoke(c.Request.Context(), claims.UserID, oldHash)
	if err := h.deps.Refresh.Store(c.Request.Context(), claims.UserID, HashToken(refresh), refreshExp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session store failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":       access,
		"access_expires_at":  accessExp,
		"refresh_token":      refresh,
		"refresh_expires_at": refreshExp,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	claims, err := h.deps.JWT.ParseRefresh(req.RefreshToken)
	if err != nil {
		// already unusable, treat as logged out
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	_ = h.deps.Refresh.Revoke(c.Request.Context(), claims.UserID, HashToken(req.RefreshToken))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// LogoutAll revokes every refresh session the signed-in user holds.
func (h *Handler) LogoutAll(c *gin.Context) {
	idAny, _ := c.Get(CtxUserIDKey)
	id, _ := idAny.(int64)

	if err := h.deps.Refresh.RevokeAll(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Me(c *gin.Context) {
	idAny, _ := c.Get(CtxUserIDKey)
	id, _ := idAny.(int64)

	u, err := h.deps.Users.ByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}
