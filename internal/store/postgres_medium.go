package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type snapshotRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Doc       string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (snapshotRecord) TableName() string { return "store_snapshots" }

type probeRecord struct {
	ID uint `gorm:"primaryKey"`
	At time.Time
}

func (probeRecord) TableName() string { return "store_probes" }

// PostgresMedium keeps the document in a single jsonb row.
type PostgresMedium struct{ db *gorm.DB }

func OpenPostgresMedium(dsn string) (*PostgresMedium, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &PostgresMedium{db: db}, nil
}

func (m *PostgresMedium) Name() string { return "postgres" }

func (m *PostgresMedium) Probe(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&snapshotRecord{}, &probeRecord{}); err != nil {
		return err
	}
	return db.Save(&probeRecord{ID: 1, At: time.Now().UTC()}).Error
}

func (m *PostgresMedium) Read(ctx context.Context) ([]byte, error) {
	var rec snapshotRecord
	err := m.db.WithContext(ctx).First(&rec, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Doc), nil
}

func (m *PostgresMedium) Write(ctx context.Context, doc []byte) error {
	rec := snapshotRecord{ID: 1, Doc: string(doc), UpdatedAt: time.Now().UTC()}
	return m.db.WithContext(ctx).Save(&rec).Error
}

func (m *PostgresMedium) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
