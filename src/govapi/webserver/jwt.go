package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func issueJWT(addr string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"addr": addr,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tok, err := jwt.Parse(h[7:], func(t *jwt.Token) (interface{}, error) { return secret, nil })
		if err != nil || !tok.Valid {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("addr", tok.Claims.(jwt.MapClaims)["addr"])
		c.Next()
	}
}

// AdminMiddleware lets only members with the admin flag through. It runs
// behind JWTMiddleware, so the address in the context is authenticated.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userAddr := c.GetString("addr")

		var member types.Member
		if err := db.First(&member, "address = ?", userAddr).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			c.Abort()
			return
		}
		if !member.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
