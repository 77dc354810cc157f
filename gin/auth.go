package gin

import (
	"github.com/gin-gonic/gin"

	"github.com/onokeee/mindmap/auth"
	"github.com/onokeee/mindmap/errors"
)

type AuthHandler struct {
	Service *auth.Service
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/login", JSONFormatter(h.Login))
	router.POST("/api/logout", JSONFormatter(h.Logout))
	router.GET("/api/check_session", JSONFormatter(h.CheckSession))
}

func (h *AuthHandler) Login(c *gin.Context) (interface{}, error) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.New("username and password required", errors.BadRequest(), errors.WithCause(err))
	}
	if body.Username == "" || body.Password == "" {
		return nil, errors.New("username and password required", errors.BadRequest())
	}

	token, session, err := h.Service.Login(body.Username, body.Password)
	if err != nil {
		return nil, err
	}

	c.SetCookie(sessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	return gin.H{"status": "success", "username": session.Username}, nil
}

func (h *AuthHandler) Logout(c *gin.Context) (interface{}, error) {
	if token := sessionToken(c); token != "" {
		h.Service.Logout(token)
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	return gin.H{"status": "success"}, nil
}

func (h *AuthHandler) CheckSession(c *gin.Context) (interface{}, error) {
	token := sessionToken(c)
	if token == "" {
		return gin.H{"logged_in": false}, nil
	}

	session := h.Service.Validate(token)
	if session == nil {
		return gin.H{"logged_in": false}, nil
	}

	return gin.H{"logged_in": true, "username": session.Username}, nil
}
