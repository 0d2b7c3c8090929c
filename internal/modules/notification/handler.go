package notification

import (
	"log/slog"
	"net/http"
	"slices"

	"whiskerwatch/internal/pkg/jwt"
	"whiskerwatch/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. allowedOrigins follows the CORS
// setting: "*" accepts any origin, an empty list only same-origin requests.
func NewHandler(hub *Hub, jwtService *jwt.Service, allowedOrigins []string) *Handler {
	h := &Handler{hub: hub, jwt: jwtService}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if slices.Contains(allowedOrigins, "*") {
		h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	} else if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		}
	}
	return h
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/bookings", h.Subscribe)
}

// Subscribe upgrades to a websocket that streams booking events for the
// caller. Browsers cannot set headers on websocket requests, so the token
// travels in the query string.
func (h *Handler) Subscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "user_id", claims.UserID, "error", err)
		return
	}

	slog.Info("booking feed connected", "user_id", claims.UserID)
	h.hub.Serve(conn, claims.UserID)
	slog.Info("booking feed disconnected", "user_id", claims.UserID)
}
