package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Andrey1104/train-station-api-service/internal/models"
)

var configKeys = []string{
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "SQLITE_PATH",
	"PORT", "JWT_SECRET", "JWT_TTL", "MEDIA_ROOT", "CORS_ALLOWED_ORIGINS",
	"ADMIN_EMAIL", "ADMIN_PASSWORD",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.DBDriver != DriverPostgres || cfg.DBPort != "5432" || cfg.Port != "8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v, want 24h", cfg.JWTTTL)
	}
	if cfg.MediaRoot != "./uploads" {
		t.Errorf("MediaRoot = %q", cfg.MediaRoot)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://example.com ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.JWTTTL != 90*time.Minute {
		t.Errorf("JWTTTL = %v", cfg.JWTTTL)
	}
	want := []string{"http://localhost:5173", "https://example.com"}
	if fmt.Sprint(cfg.AllowedOrigins) != fmt.Sprint(want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"bad driver", map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "mysql"}},
		{"bad ttl", map[string]string{"JWT_SECRET": "s", "JWT_TTL": "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("LoadConfig() succeeded, want error")
			}
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := map[string]string{
		"station.db":                     "station.db?_pragma=foreign_keys(1)",
		"file:x?mode=memory":             "file:x?mode=memory&_pragma=foreign_keys(1)",
		"file:x?_pragma=foreign_keys(1)": "file:x?_pragma=foreign_keys(1)",
	}
	for in, want := range tests {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitDatabaseSeedsRolesAndAdmin(t *testing.T) {
	cfg := &Config{
		DBDriver:      DriverSQLite,
		SQLitePath:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AdminEmail:    "admin@example.com",
		AdminPassword: "s3cret!",
	}

	db, err := InitDatabase(cfg)
	if err != nil {
		t.Fatalf("InitDatabase() failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	var roles int64
	if err := db.Model(&models.Role{}).Count(&roles).Error; err != nil || roles != 2 {
		t.Fatalf("roles = %d, %v; want 2", roles, err)
	}

	var admin models.User
	if err := db.Preload("Role").Where("email = ?", cfg.AdminEmail).First(&admin).Error; err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if !admin.IsAdmin() {
		t.Errorf("seeded user role = %q", admin.Role.Name)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(cfg.AdminPassword)); err != nil {
		t.Errorf("admin password not hashed with bcrypt: %v", err)
	}

	// seeding again is a no-op
	if err := seedRoles(db); err != nil {
		t.Fatalf("seedRoles() failed: %v", err)
	}
	if err := seedAdmin(db, cfg); err != nil {
		t.Fatalf("seedAdmin() failed: %v", err)
	}
	var users int64
	db.Model(&models.User{}).Count(&users)
	if users != 1 {
		t.Errorf("users = %d after reseed, want 1", users)
	}
}
