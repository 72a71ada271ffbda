package webserver

import (
	"log"
	"net/http"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/data"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Auth runs the challenge flow. The API never sees wallet keys: Challenge
// parks a nonce for the address, the wallet verifier service checks the
// holder's signature out of band and confirms the nonce, and Verify trades
// the confirmed nonce for a session token.
type Auth struct {
	rdb           *redis.Client
	jwtSecret     []byte
	verifierToken string
}

func NewAuth(rdb *redis.Client, secret []byte, verifierToken string) Auth {
	return Auth{rdb: rdb, jwtSecret: secret, verifierToken: verifierToken}
}

func (a Auth) Challenge(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	log.Printf("auth challenge for %s from %s", req.Address, c.ClientIP())

	nonce := uuid.NewString()
	if err := data.SetNonce(c, a.rdb, req.Address, nonce); err != nil {
		log.Printf("failed to set nonce for %s: %v", req.Address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to create challenge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}

// Confirm is the wallet verifier's callback. It carries a service token,
// not a member session.
func (a Auth) Confirm(c *gin.Context) {
	if c.GetHeader("X-Verifier-Token") != a.verifierToken {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	var req struct {
		Address string `json:"address" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := data.ConfirmNonce(c, a.rdb, req.Address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmed": true})
}

func (a Auth) Verify(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	nonce, err := data.GetAndDelNonce(c, a.rdb, req.Address)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "challenge expired"})
		return
	}
	if nonce != "CONFIRMED" {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "challenge not confirmed"})
		return
	}

	token, err := issueJWT(req.Address, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	log.Printf("authenticated %s", req.Address)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
