package rest

import (
	"github.com/gin-gonic/gin"
)

// Principal is the authenticated caller, carried explicitly through the
// request context rather than any ambient global.
type Principal struct {
	UserID   int64
	Username string
	Email    string
	Role     string
}

const principalKey = "principal"

func setPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func (p Principal) IsAdmin() bool {
	return p.Role == "ADMIN"
}
