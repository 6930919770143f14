package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	gosql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func buildDSN(user, pass, host, port, dbName string) string {
	cfg := gosql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
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

	return buildDSN(user, pass, host, port, dbName), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	return buildDSN(user, pass, host, port, dbName), nil
}

// SeedDatabase creates a default operator account and a starter room
// inventory when the tables are empty.
func SeedDatabase() {
	var opCount int64
	DB.Model(&models.Operator{}).Count(&opCount)
	if opCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("OPERATOR_PASSWORD", "operator123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default operator password: %v", err)
		} else {
			op := models.Operator{
				FullName: "Front Desk",
				Username: "operator@hotel.local",
				Password: string(hash),
			}
			if err := DB.Create(&op).Error; err != nil {
				log.Printf("warning: failed to create default operator: %v", err)
			} else {
				log.Println("Default operator seeded")
			}
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", Type: models.RoomTypeSingle, Name: "City Single", Capacity: 1, Price: 79, Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "102", Type: models.RoomTypeSingle, Name: "City Single", Capacity: 1, Price: 79, Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "201", Type: models.RoomTypeDouble, Name: "Garden Double", Capacity: 2, Price: 129, Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "202", Type: models.RoomTypeDouble, Name: "Garden Double", Capacity: 2, Price: 129, Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "301", Type: models.RoomTypeSuite, Name: "Panorama Suite", Capacity: 4, Price: 249, Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "401", Type: models.RoomTypeDeluxe, Name: "Skyline Deluxe", Capacity: 3, Price: 189, Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "501", Type: models.RoomTypePresidential, Name: "Presidential", Capacity: 6, Price: 899, Status: models.RoomAvailable, IsActive: true},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
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

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Operator{},
		&models.Room{},
		&models.Reservation{},
	); err != nil {
		return err
	}

	if strings.ToLower(utils.EnvOrDefault("SEED_ON_START", "true")) == "true" {
		SeedDatabase()
	}
	return nil
}
