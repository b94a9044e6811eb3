package store

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type sliceSnapshot struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (sliceSnapshot) TableName() string {
	return "slice_snapshots"
}

// credentialRecord is a singleton row holding the sealed auth token.
type credentialRecord struct {
	ID         int64 `gorm:"primaryKey"`
	Ciphertext []byte
	UpdatedAt  time.Time
}

func (credentialRecord) TableName() string {
	return "credentials"
}

// Persister is the device-storage layer: one sqlite file with a row
// per persisted slice plus the credential record. It implements both
// SnapshotStore and the auth package's CredentialStore.
type Persister struct {
	db *gorm.DB
}

func OpenPersister(path string) (*Persister, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open device storage: %w", err)
	}

	if err := db.AutoMigrate(&sliceSnapshot{}, &credentialRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate device storage: %w", err)
	}

	return &Persister{db: db}, nil
}

func (p *Persister) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *Persister) SaveSlice(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slice %s: %w", name, err)
	}

	record := sliceSnapshot{Name: name, Data: data, UpdatedAt: time.Now()}
	return p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&record).Error
}

// LoadSlice reports false when no snapshot exists. A snapshot that
// exists but does not decode is returned as an error so the caller
// can fall back to the slice's initial state.
func (p *Persister) LoadSlice(name string, out any) (bool, error) {
	var record sliceSnapshot
	err := p.db.First(&record, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(record.Data, out); err != nil {
		return false, fmt.Errorf("corrupt snapshot for slice %s: %w", name, err)
	}
	return true, nil
}

func (p *Persister) DeleteSlice(name string) error {
	return p.db.Delete(&sliceSnapshot{}, "name = ?", name).Error
}

func (p *Persister) SaveCredential(ciphertext []byte) error {
	record := credentialRecord{ID: 1, Ciphertext: ciphertext, UpdatedAt: time.Now()}
	return p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
}

func (p *Persister) LoadCredential() ([]byte, bool, error) {
	var record credentialRecord
	err := p.db.First(&record, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record.Ciphertext, true, nil
}

func (p *Persister) DeleteCredential() error {
	return p.db.Delete(&credentialRecord{}, "id = ?", 1).Error
}
