package sqlstore

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Table models used only to migrate the PostgreSQL schema. Reads and writes
// go through the same SQL as SQLite.
type userRecord struct {
	ID    int64  `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

type postRecord struct {
	ID      int64      `gorm:"primaryKey"`
	Title   string     `gorm:"not null"`
	Content string     `gorm:"not null"`
	UserID  int64      `gorm:"not null;index"`
	User    userRecord `gorm:"constraint:OnDelete:CASCADE"`
}

func (postRecord) TableName() string { return "posts" }

type tagRecord struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (tagRecord) TableName() string { return "tags" }

type tagPostRecord struct {
	TagID  int64      `gorm:"primaryKey;autoIncrement:false"`
	PostID int64      `gorm:"primaryKey;autoIncrement:false;index"`
	Tag    tagRecord  `gorm:"constraint:OnDelete:CASCADE"`
	Post   postRecord `gorm:"constraint:OnDelete:CASCADE"`
}

func (tagPostRecord) TableName() string { return "tag_posts" }

// OpenPostgres connects to PostgreSQL at opts.DSN, migrates the schema and
// returns a store over gorm's underlying pool.
func OpenPostgres(opts Options, logger *slog.Logger) (*Store, error) {
	gdb, err := gorm.Open(postgres.Open(opts.DSN), &gorm.Config{
		Logger: gormlogger.New(gormWriter{logger: logger}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}

	configurePool(db, opts)

	if err := gdb.AutoMigrate(&userRecord{}, &postRecord{}, &tagRecord{}, &tagPostRecord{}); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate postgres schema: %w", err)
	}

	logger.Debug("postgres store opened")

	return &Store{db: db, dialect: dialectPostgres, logger: logger}, nil
}

// gormWriter routes gorm's log output through slog.
type gormWriter struct {
	logger *slog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.logger.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}
