// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Env holds the configuration values for the application.
type Env struct {
	Region         string
	Table          string
	Bucket         string // export downloads only; may be empty elsewhere
	PresignTTL     time.Duration
	DevBypassAuth  bool
	DefaultPerito  string
	MaxUploadBytes int64
}

// MustLoad reads the environment variables and returns an Env struct.
func MustLoad() Env {
	ttlSec, _ := strconv.Atoi(get("PRESIGN_TTL_SECONDS", "300"))
	maxUpload, _ := strconv.ParseInt(get("MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	e := Env{
		Region:         get("AWS_REGION", "us-east-1"),
		Table:          must("DDB_TABLE"),
		Bucket:         get("S3_BUCKET", ""),
		PresignTTL:     time.Duration(ttlSec) * time.Second,
		DevBypassAuth:  get("DEV_BYPASS_AUTH", "") == "true",
		DefaultPerito:  get("DEFAULT_PERITO", "Engº Arthur Reis"),
		MaxUploadBytes: maxUpload,
	}
	return e
}

// get returns the value of the environment variable k or def if not set.
func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// must returns the value of the environment variable k or panics if not set.
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic(fmt.Errorf("missing env %s", k))
	}
	return v
}
