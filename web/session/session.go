// Package session wraps gin-contrib/sessions: it binds the logged-in user's
// id to the cookie session and carries one-shot flash notices.
package session

import (
	"shopfront/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUserKey = "LOGIN_USER_ID"

// SetLoginUser binds the session to the user's primary key. The user record
// itself is re-fetched from the database on every request.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, user.Id)
	return s.Save()
}

// GetLoginUserId returns the bound user id, or false when the session is
// anonymous.
func GetLoginUserId(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if id, ok := obj.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// IsLogin reports whether the session carries a user binding.
func IsLogin(c *gin.Context) bool {
	_, ok := GetLoginUserId(c)
	return ok
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// ClearSession drops the session binding unconditionally. Clearing an
// anonymous session is a no-op.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}

// AddFlash queues a one-shot notice shown on the next page the user loads.
func AddFlash(c *gin.Context, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg)
	return s.Save()
}

// TakeFlashes returns queued notices and consumes them.
func TakeFlashes(c *gin.Context) []string {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	// Reading flashes mutates the session, persist the removal.
	_ = s.Save()
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if str, ok := f.(string); ok {
			out = append(out, str)
		}
	}
	return out
}
