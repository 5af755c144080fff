package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Andrey1104/train-station-api-service/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	Port           string
	JWTSecret      string
	JWTTTL         time.Duration
	MediaRoot      string
	AllowedOrigins []string

	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		SQLitePath: getEnv("SQLITE_PATH", "train_station.db"),

		Port:           getEnv("PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         ttl,
		MediaRoot:      getEnv("MEDIA_ROOT", "./uploads"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dialector(cfg *Config) gorm.Dialector {
	if cfg.DBDriver == DriverSQLite {
		return sqlite.Open(sqliteDSN(cfg.SQLitePath))
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
	return postgres.Open(dsn)
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(cfg), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// a single connection keeps in-memory databases shared and serializes writers
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.TrainType{},
		&models.Train{},
		&models.Station{},
		&models.Route{},
		&models.Crew{},
		&models.Trip{},
		&models.Order{},
		&models.Ticket{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedRoles(db); err != nil {
		return nil, err
	}
	if err := seedAdmin(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleUser},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("seed role %s: %w", role.Name, err)
			}
		} else if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("load admin role: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		RoleID:   role.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Printf("Seeded admin account %s", cfg.AdminEmail)
	return nil
}
