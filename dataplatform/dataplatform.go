// Package dataplatform handles the streaming of run results to Supabase.
// Completed runs are buffered on disk in a SQLite database before being
// uploaded, so results survive network outages.
package dataplatform

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	supa "github.com/nedpals/supabase-go"

	"github.com/pcwa/abayscheduler/records"
	"github.com/pcwa/abayscheduler/repository"
)

// RunResult bundles a run summary with its schedule hours for publication.
type RunResult struct {
	Run   records.Run
	Hours []records.RunHour
}

// DataPlatform buffers and uploads run results. Put completed runs onto the
// Results channel; they are persisted locally before upload.
type DataPlatform struct {
	Results chan RunResult

	repository *repository.Repository
	supaClient *supa.Client
}

func New(supabaseUrl, supabaseKey, schema, bufferRepositoryFilename string) (*DataPlatform, error) {

	supaClient := supa.CreateClient(supabaseUrl, supabaseKey)

	supaClient.DB.AddHeader("Accept-Profile", schema)
	supaClient.DB.AddHeader("Content-Profile", schema)

	repository, err := repository.New(bufferRepositoryFilename)
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}

	return &DataPlatform{
		Results:    make(chan RunResult, 4), // a small buffer to allow SQLite to catch up in case the disk is slow
		repository: repository,
		supaClient: supaClient,
	}, nil
}

// Run loops until the context is cancelled, persisting incoming results and
// periodically attempting uploads.
func (d *DataPlatform) Run(ctx context.Context, uploadInterval time.Duration) {

	uploadTicker := time.NewTicker(uploadInterval)
	defer uploadTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case result := <-d.Results:
			err := d.repository.AddRun(result.Run, result.Hours)
			if err != nil {
				slog.Error("failed to persist run", "error", err)
			}
			slog.Debug("Stored run", "run_id", result.Run.ID, "hours", len(result.Hours))

		case <-uploadTicker.C:
			d.attemptUpload()
		}
	}
}

// attemptUpload attempts to upload buffered runs from the repository into Supabase.
func (d *DataPlatform) attemptUpload() {

	// uploadChunkLimit defines how many records we can upload in one supabase HTTP request
	uploadChunkLimit := 100

	// first attempt to upload any new records that have not been seen before
	freshRuns, err := d.repository.GetRuns(uploadChunkLimit, true)
	if err != nil {
		slog.Error("failed to query fresh runs", "error", err)
	} else if len(freshRuns) > 0 {
		err = d.handleRecords(freshRuns)
		if err != nil {
			slog.Error("failed to handle fresh runs", "error", err)
		}
	}
	freshHours, err := d.repository.GetRunHours(uploadChunkLimit, true)
	if err != nil {
		slog.Error("failed to query fresh run hours", "error", err)
	} else if len(freshHours) > 0 {
		err = d.handleRecords(freshHours)
		if err != nil {
			slog.Error("failed to handle fresh run hours", "error", err)
		}
	}

	// then attempt to upload any old records that have already failed an upload at least once
	oldRuns, err := d.repository.GetRuns(uploadChunkLimit, false)
	if err != nil {
		slog.Error("failed to query old runs", "error", err)
	} else if len(oldRuns) > 0 {
		err = d.handleRecords(oldRuns)
		if err != nil {
			slog.Error("failed to handle old runs", "error", err)
		}
	}
	oldHours, err := d.repository.GetRunHours(uploadChunkLimit, false)
	if err != nil {
		slog.Error("failed to query old run hours", "error", err)
	} else if len(oldHours) > 0 {
		err = d.handleRecords(oldHours)
		if err != nil {
			slog.Error("failed to handle old run hours", "error", err)
		}
	}
}

// handleRecords attempts to upload the given records. If successful, it deletes them from the database, if
// unsuccessful, it increments the 'upload attempt count' column and leaves them in the database for another time.
func (d *DataPlatform) handleRecords(rows interface{}) error {

	convertedRows, tableName := getRecordsForSupabase(rows)
	uploadErr := d.supaClient.DB.From(tableName).Insert(convertedRows).Execute(nil)
	if uploadErr != nil {
		uploadErr := fmt.Errorf("upload failed: %w", uploadErr)
		errInc := d.repository.IncrementUploadAttemptCount(rows)
		if errInc != nil {
			return fmt.Errorf("%w: increment upload attempt count: %w", uploadErr, errInc)
		}
		return uploadErr
	}

	deleteErr := d.repository.DeleteRecords(rows)
	if deleteErr != nil {
		return fmt.Errorf("delete records (%+v): %w", rows, deleteErr)
	}

	slog.Info("Uploaded records", "db_table", tableName, "db_records", reflect.ValueOf(rows).Len())

	return nil
}
