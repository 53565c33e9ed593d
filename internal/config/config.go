package config

import (
	"log"
	"os"
	"time"

	"signoff/internal/roles"
)

var (
	Port          string
	JWTKey        []byte
	JWTExpiration time.Duration
	RoleSequence  roles.Sequence
	StoreURL      string
	StoreBaseURL  string
	ReminderAfter time.Duration
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	JWTExpiration = durationEnv("JWT_EXPIRE", 24*time.Hour)

	chain := os.Getenv("APPROVAL_ROLE_SEQUENCE")
	if chain == "" {
		chain = "MANAGER,DIRECTOR"
	}
	RoleSequence = roles.Parse(chain)
	if RoleSequence.Len() == 0 {
		log.Fatalf("APPROVAL_ROLE_SEQUENCE %q contains no roles", chain)
	}

	StoreURL = os.Getenv("ATTACHMENT_STORE_URL")
	if StoreURL == "" {
		StoreURL = "file:///var/lib/signoff/attachments"
	}

	StoreBaseURL = os.Getenv("ATTACHMENT_BASE_URL")
	if StoreBaseURL == "" {
		StoreBaseURL = "/files"
	}

	ReminderAfter = durationEnv("REMINDER_AFTER", 24*time.Hour)
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid %s: %s, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
