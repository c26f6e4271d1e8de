package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "4000" {
		t.Fatalf("expected default port 4000, got %s", cfg.Port)
	}
	if cfg.StoreDriver != StoreMongo {
		t.Fatalf("expected mongo store, got %s", cfg.StoreDriver)
	}
	if !cfg.Mongo.Transactions {
		t.Fatalf("expected transactions enabled by default")
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected redis disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.GitHub.TokenURL != "https://github.com/login/oauth/access_token" {
		t.Fatalf("unexpected token url: %s", cfg.GitHub.TokenURL)
	}
	if cfg.Lock.Wait != 3*time.Second {
		t.Fatalf("unexpected lock wait: %v", cfg.Lock.Wait)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":               "9090",
		"DATABASE_URL":       "mongodb://db:27017/?replicaSet=rs0",
		"MONGO_TRANSACTIONS": "false",
		"CLIENT_ID":          "abc",
		"CLIENT_SECRET":      "shh",
		"REDIS_ADDR":         "redis:6379",
		"RECONCILE_INTERVAL": "0s",
		"STORE_DRIVER":       "memory",
		"CORS_ORIGINS":       "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" || cfg.Mongo.URI != "mongodb://db:27017/?replicaSet=rs0" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Mongo.Transactions {
		t.Fatalf("expected transactions disabled")
	}
	if cfg.GitHub.ClientID != "abc" || cfg.GitHub.ClientSecret != "shh" {
		t.Fatalf("unexpected github credentials: %+v", cfg.GitHub)
	}
	if cfg.Reconcile.Interval != 0 {
		t.Fatalf("expected sweep disabled, got %v", cfg.Reconcile.Interval)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store, got %s", cfg.StoreDriver)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_UnknownStoreDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER": "postgres",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}
