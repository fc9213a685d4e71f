package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-frontdesk/models"
	"hotel-frontdesk/roommap"
)

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
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
		return "", "", fmt.Errorf("mysql url missing database name")
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
	return dsn, dbName, nil
}

// resolveMySQLDSN prefers MYSQL_URL, then DATABASE_URL, then the DB_* fields.
func resolveMySQLDSN(cfg Config) (string, string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, cfg.DBName, nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	return dsn, cfg.DBName, nil
}

// gormWriter sends gorm's log lines to zerolog.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConnectDatabase opens MySQL, migrates the walk-in tables and seeds the rooms when asked.
func ConnectDatabase(cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	dsn, dbName, err := resolveMySQLDSN(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		gormWriter{log: log.With().Str("component", "gorm").Logger()},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.DBLogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open mysql %s: %w", dbName, err)
	}

	if err := db.AutoMigrate(
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.DBSeed {
		n, err := SeedDatabase(db)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			log.Info().Int("rooms", n).Msg("rooms seeded")
		}
	}
	return db, nil
}

type roomSeed struct {
	Type         models.RoomType
	Price        float64
	MaxOccupancy int
	Features     string
}

// seedFor is the room type of a slot on the floor plans.
func seedFor(building string, floor int, roomNumber string) roomSeed {
	if building == roommap.BuildingAnnex {
		if floor == 2 {
			return roomSeed{models.RoomTypeHopIn, 800, 1, `{"bed":"single pod","shower":"shared","wifi":true}`}
		}
		return roomSeed{models.RoomTypeZenith, 3500, 2, `{"bed":"king","bathtub":true,"view":"garden","wifi":true}`}
	}
	switch floor {
	case 3:
		return roomSeed{models.RoomTypeStandard, 1200, 2, `{"bed":"queen","wifi":true}`}
	case 4:
		if n, err := strconv.Atoi(strings.TrimPrefix(roomNumber, "4")); err == nil && n >= 9 {
			return roomSeed{models.RoomTypeSuperior, 1500, 2, `{"bed":"queen","balcony":true,"wifi":true}`}
		}
		return roomSeed{models.RoomTypeDeluxe, 2000, 3, `{"bed":"king","balcony":true,"minibar":true,"wifi":true}`}
	default:
		return roomSeed{models.RoomTypeFamily, 2800, 4, `{"bed":"king + twin","sofa":true,"wifi":true}`}
	}
}

// SeedRooms builds one CLEAN room per slot of every floor plan.
func SeedRooms() []models.Room {
	var rooms []models.Room
	for _, layout := range roommap.Layouts() {
		for _, floor := range layout.Floors {
			for _, row := range floor.Rows {
				for _, number := range row {
					s := seedFor(layout.Building, floor.Number, number)
					rooms = append(rooms, models.Room{
						RoomNumber:   number,
						RoomType:     s.Type,
						Floor:        floor.Number,
						Price:        s.Price,
						MaxOccupancy: s.MaxOccupancy,
						Features:     datatypes.JSON(s.Features),
						Status:       models.RoomStatusClean,
						Description:  s.Type.Label() + " " + number,
					})
				}
			}
		}
	}
	return rooms
}

// SeedDatabase inserts the rooms when the table is empty and returns how many were created.
func SeedDatabase(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	rooms := SeedRooms()
	if err := db.CreateInBatches(&rooms, 50).Error; err != nil {
		return 0, fmt.Errorf("seed rooms: %w", err)
	}
	return len(rooms), nil
}
