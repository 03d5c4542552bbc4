package main

import (
	"os"
	"testing"
)

func TestResolveMigrationsPath(t *testing.T) {
	orig := os.Getenv("MIGRATIONS_PATH")
	defer os.Setenv("MIGRATIONS_PATH", orig)

	os.Unsetenv("MIGRATIONS_PATH")
	if got := resolveMigrationsPath(); got != "migrations" {
		t.Fatalf("expected default path migrations, got %s", got)
	}

	os.Setenv("MIGRATIONS_PATH", "/srv/migrations")
	if got := resolveMigrationsPath(); got != "/srv/migrations" {
		t.Fatalf("expected overridden path /srv/migrations, got %s", got)
	}
}
