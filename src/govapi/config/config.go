package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	MySQLDSN       string
	RedisURL       string
	JWTSecret      string
	VerifierToken  string
	Port           string
	PollInterval   int
	QuorumRequired uint64
	VotingDays     int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	pi, _ := strconv.Atoi(getenv("POLL_INTERVAL", "60"))
	if pi <= 0 {
		pi = 60
	}
	quorum, _ := strconv.ParseUint(getenv("QUORUM_REQUIRED", "100"), 10, 64)
	days, _ := strconv.Atoi(getenv("VOTING_DAYS", "7"))
	return Config{
		MySQLDSN:       getenv("MYSQL_DSN", "cf1:cf1dev@tcp(127.0.0.1:3306)/cf1_governance"),
		RedisURL:       getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:      getenv("JWT_SECRET", "2f5c6a1de9b44d92a42a9af1f0c7d75a4fd2b6d86c53c2a01f9773214f8876d1"),
		VerifierToken:  getenv("VERIFIER_TOKEN", "dev-verifier-token"),
		Port:           getenv("PORT", "8080"),
		PollInterval:   pi,
		QuorumRequired: quorum,
		VotingDays:     days,
	}
}
