package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"flexitrip-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

// openDialector resolves the datastore: MYSQL_URL/DATABASE_URL when
// set, otherwise the local sqlite file (SQLITE_PATH, default
// flexitrip.db). The sqlite DSN carries _busy_timeout so concurrent
// writers wait out a locked database instead of failing outright.
func openDialector() (gorm.Dialector, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		dsn := raw
		if strings.HasPrefix(raw, "mysql://") {
			converted, err := mysqlDSNFromURL(raw)
			if err != nil {
				return nil, "", err
			}
			dsn = converted
		}
		return mysql.Open(dsn), "mysql", nil
	}

	path := envOrDefault("SQLITE_PATH", "flexitrip.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	return sqlite.Open(dsn), "sqlite", nil
}

// SeedDestinations ensures the destination coordinate table has the
// default rows the map builder depends on.
func SeedDestinations() {
	var count int64
	DB.Model(&models.Destination{}).Count(&count)
	if count > 0 {
		log.Println("Destinations already seeded")
		return
	}

	destinations := []models.Destination{
		{Name: "Rajasthan", Lat: 26.9124, Lng: 75.7873, Description: "Royal palaces and desert adventures"},
		{Name: "Kerala", Lat: 9.9312, Lng: 76.2673, Description: "Backwaters and spice plantations"},
		{Name: "Goa", Lat: 15.2993, Lng: 74.1240, Description: "Beaches and Portuguese heritage"},
		{Name: "Himachal Pradesh", Lat: 32.2432, Lng: 77.1892, Description: "Mountains and hill stations"},
		{Name: "Tamil Nadu", Lat: 13.0827, Lng: 80.2707, Description: "Ancient temples and culture"},
		{Name: "Karnataka", Lat: 12.9716, Lng: 77.5946, Description: "Tech hub and historical sites"},
		{Name: "Uttarakhand", Lat: 30.0668, Lng: 79.0193, Description: "Himalayan foothills and pilgrim towns"},
		{Name: "Maharashtra", Lat: 19.0760, Lng: 72.8777, Description: "Mumbai and the Western Ghats"},
		{Name: "Gujarat", Lat: 23.0225, Lng: 72.5714, Description: "Salt deserts and stepwells"},
		{Name: "Punjab", Lat: 30.7333, Lng: 76.7794, Description: "Golden Temple and hearty cuisine"},
	}

	if err := DB.Create(&destinations).Error; err != nil {
		log.Printf("warning: failed to seed destinations: %v", err)
		return
	}
	log.Println("Destinations seeded")
}

func ConnectDatabase() error {
	dialector, driver, err := openDialector()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	if driver == "sqlite" {
		// One writer at a time; the busy timeout handles the rest.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Trip{},
		&models.Booking{},
		&models.ChatMessage{},
		&models.AnalyticsEvent{},
		&models.Destination{},
	); err != nil {
		return err
	}

	SeedDestinations()
	return nil
}
