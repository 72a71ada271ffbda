// Minimal end-to-end integration test for the governance API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	baseURL  = getenv("API_URL", "http://localhost:8080/v1")
	redisURL = getenv("REDIS_URL", "redis://127.0.0.1:6379/0")
	mysqlDSN = getenv("MYSQL_DSN", "cf1:cf1dev@tcp(127.0.0.1:3306)/cf1_governance?parseTime=true")
	addr     = "smoke-test-member-0001"
	assetID  = "asset-smoke-test"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	ctx := context.Background()
	rdb := mustRedis()
	defer rdb.Close()
	db := mustMySQL()

	seedMember(db) // admin flag plus voting power, normally granted by the platform

	_ = challenge()        // obtain nonce but we don't need the value after confirming
	confirmNonce(ctx, rdb) // mark as CONFIRMED in Redis, standing in for the wallet verifier
	token := verify()      // get JWT

	draftID := createDraft(token)
	propID := submitDraft(token, draftID)
	approve(token, propID)

	castVote(token, propID)
	checkResults(token, propID)
	checkBoard(token, propID)

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- auth

func challenge() string {
	var resp struct{ Nonce string }
	doJSON("POST", "/auth/challenge", map[string]any{
		"address": addr,
	}, &resp, http.StatusOK)
	if resp.Nonce == "" {
		log.Fatal("challenge: empty nonce")
	}
	return resp.Nonce
}

func confirmNonce(ctx context.Context, rdb *redis.Client) {
	if err := rdb.Set(ctx, "nonce:"+addr, "CONFIRMED", 5*time.Minute).Err(); err != nil {
		log.Fatalf("redis set: %v", err)
	}
}

func verify() string {
	var resp struct{ Token string }
	doJSON("POST", "/auth/verify", map[string]any{
		"address": addr,
	}, &resp, http.StatusOK)
	if resp.Token == "" {
		log.Fatal("verify: empty token")
	}
	return resp.Token
}

// ----------------------------- proposal lifecycle

func createDraft(tok string) string {
	var resp struct {
		ID     string
		Status string
	}
	doAuth(tok, "POST", "/drafts", map[string]any{
		"title":              "Smoke test renovation",
		"description":        "Replace the lobby flooring.",
		"rationale":          "Integration check.",
		"assetName":          "Smoke Test Tower",
		"assetType":          "Commercial Real Estate",
		"assetId":            assetID,
		"proposalType":       "renovation",
		"votingDurationDays": 7,
		"proposedBy":         "Smoke Tester",
	}, &resp, http.StatusCreated)
	if resp.Status != "draft" {
		log.Fatalf("draft: want status draft got %s", resp.Status)
	}
	return resp.ID
}

func submitDraft(tok, draftID string) string {
	var resp struct {
		ID     string
		Status string
	}
	doAuth(tok, "POST", "/drafts/"+draftID+"/submit", nil, &resp, http.StatusOK)
	if resp.Status != "submitted" {
		log.Fatalf("submit: want status submitted got %s", resp.Status)
	}
	return resp.ID
}

func approve(tok, propID string) {
	var resp struct{ Status string }
	doAuth(tok, "POST", "/admin/proposals/"+propID+"/approve", map[string]any{
		"comments": "smoke test approval",
	}, &resp, http.StatusOK)
	if resp.Status != "active" {
		log.Fatalf("approve: want status active got %s", resp.Status)
	}
}

// ----------------------------- votes

func castVote(tok, propID string) {
	doAuth(tok, "POST", "/votes", map[string]any{
		"proposalId": propID,
		"choice":     "for",
	}, nil, http.StatusCreated)
}

func checkResults(tok, propID string) {
	var resp struct {
		VotesFor  uint64
		UserVoted string
	}
	doAuth(tok, "GET", "/votes/"+propID, nil, &resp, http.StatusOK)
	if resp.VotesFor == 0 {
		log.Fatal("results: tally missing ballot")
	}
	if resp.UserVoted != "for" {
		log.Fatalf("results: want userVoted for got %s", resp.UserVoted)
	}
}

func checkBoard(tok, propID string) {
	var resp struct {
		Proposals []struct{ ID string }
	}
	doAuth(tok, "GET", "/proposals", nil, &resp, http.StatusOK)
	for _, p := range resp.Proposals {
		if p.ID == propID {
			return
		}
	}
	log.Fatal("board: approved proposal not listed")
}

// ----------------------------- helpers

func mustRedis() *redis.Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("redis url: %v", err)
	}
	return redis.NewClient(opt)
}

func mustMySQL() *gorm.DB {
	db, err := gorm.Open(mysql.Open(mysqlDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}

func seedMember(db *gorm.DB) {
	if err := db.Exec("REPLACE INTO members (address, name, is_admin) VALUES (?, ?, ?)",
		addr, "Smoke Tester", true).Error; err != nil {
		log.Fatalf("seed member: %v", err)
	}
	if err := db.Exec("REPLACE INTO holdings (asset_id, address, balance) VALUES (?, ?, ?)",
		assetID, addr, 250).Error; err != nil {
		log.Fatalf("seed holding: %v", err)
	}
}

func doAuth(token, method, path string, body, out any, want int) {
	doReq(method, path, token, body, out, want)
}

func doJSON(method, path string, body, out any, want int) {
	doReq(method, path, "", body, out, want)
}

func doReq(method, path, token string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	req, _ := http.NewRequest(method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, path, want, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}
