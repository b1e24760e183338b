package history

import (
	"Mapper/pkg/helpers"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InMemory keeps the history for the life of the process only
const InMemory = ":memory:"

// Record is one finished or failed scan
type Record struct {
	ID         string `gorm:"primaryKey"`
	Label      string
	Target     string
	Args       string
	OutputFile string
	Vulnerable bool
	Findings   int
	ExitCode   int
	Error      string
	StartedAt  time.Time `gorm:"index"`
	FinishedAt time.Time
}

// Succeeded reports whether the scan produced a report
func (r Record) Succeeded() bool {
	return r.Error == ""
}

// Store persists scan records in a sqlite database
type Store struct {
	db *gorm.DB
}

func Open(location string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(location), &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open history database")
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate history database")
	}
	return &Store{db: db}, nil
}

// Add stores rec, giving it an ID if it has none
func (s *Store) Add(rec *Record) error {
	if rec.ID == "" {
		rec.ID = helpers.IDGenerator().Generate().String()
	}
	if err := s.db.Create(rec).Error; err != nil {
		return errors.Wrap(err, "failed to save scan record")
	}
	return nil
}

// Recent returns up to limit records, newest first. A limit of zero or less
// returns everything.
func (s *Store) Recent(limit int) ([]Record, error) {
	var recs []Record
	q := s.db.Order("started_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list scan records")
	}
	return recs, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get history connection")
	}
	return sqlDB.Close()
}
