package repository

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/pcwa/abayscheduler/records"
)

// Repository stores run results to the local file system (sqlite) before they are uploaded to Supabase.
type Repository struct {
	db *gorm.DB
}

func New(path string) (*Repository, error) {

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Migrate the schema
	err = db.AutoMigrate(&StoredRun{}, &StoredRunHour{})
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// AddRun persists a run summary and all of its schedule hours.
func (r *Repository) AddRun(run records.Run, hours []records.RunHour) error {
	result := r.db.Create(newStoredRun(run))
	if result.Error != nil {
		return result.Error
	}
	for _, hour := range hours {
		result = r.db.Create(newStoredRunHour(hour))
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func (r *Repository) DeleteRecords(rows interface{}) error {
	result := r.db.Delete(&rows)
	return result.Error
}

func (r *Repository) GetRuns(limit int, fresh bool) ([]StoredRun, error) {
	var runs []StoredRun

	query := r.db.Limit(limit).Order("upload_attempt_count asc, time desc")
	if fresh {
		query = query.Where("upload_attempt_count = ?", 0)
	} else {
		query = query.Where("upload_attempt_count > ?", 0)
	}
	result := query.Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

func (r *Repository) GetRunHours(limit int, fresh bool) ([]StoredRunHour, error) {
	var hours []StoredRunHour

	query := r.db.Limit(limit).Order("upload_attempt_count asc, time desc")
	if fresh {
		query = query.Where("upload_attempt_count = ?", 0)
	} else {
		query = query.Where("upload_attempt_count > ?", 0)
	}
	result := query.Find(&hours)
	if result.Error != nil {
		return nil, result.Error
	}
	return hours, nil
}

func (r *Repository) IncrementUploadAttemptCount(rows interface{}) error {
	result := r.db.Model(rows).UpdateColumn("upload_attempt_count", gorm.Expr("upload_attempt_count + ?", 1))
	return result.Error
}
