package gin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/onokeee/mindmap/auth"
	"github.com/onokeee/mindmap/errors"
)

// sessionCookie carries the signed session token between requests.
const sessionCookie = "mindmap_session"

type HandlerFunc func(*gin.Context) (interface{}, error)

// JSONFormatter renders the handler's result, mapping coded errors onto their
// status and everything else onto 500.
func JSONFormatter(next HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := next(c)
		if err != nil {
			c.JSON(errors.Code(err), gin.H{
				"error": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// Authenticator guards protected handlers: the request must carry a token
// bound to a live session before the handler runs.
type Authenticator struct {
	Service *auth.Service
}

func (a *Authenticator) Authenticate(next HandlerFunc) HandlerFunc {
	return func(c *gin.Context) (interface{}, error) {
		token := sessionToken(c)
		if token == "" {
			return nil, errors.New("not logged in", errors.Unauthorized())
		}

		session := a.Service.Validate(token)
		if session == nil {
			return nil, errors.New("not logged in", errors.Unauthorized())
		}

		c.Set("session", session)
		return next(c)
	}
}

// sessionToken reads the token from the session cookie, falling back on a
// bearer Authorization header for non-browser clients.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.Request.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}

func session(c *gin.Context) *auth.Session {
	return c.MustGet("session").(*auth.Session)
}
