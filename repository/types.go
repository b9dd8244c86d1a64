package repository

import "github.com/pcwa/abayscheduler/records"

// StoredRun represents a run summary that is persisted to the SQLite database, and includes a count of upload attempts.
type StoredRun struct {
	records.Run
	UploadAttemptCount uint
}

// StoredRunHour represents one schedule hour that is persisted to the SQLite database, and includes a count of upload attempts.
type StoredRunHour struct {
	records.RunHour
	UploadAttemptCount uint
}

func newStoredRun(run records.Run) StoredRun {
	return StoredRun{
		Run:                run,
		UploadAttemptCount: 0,
	}
}

func newStoredRunHour(hour records.RunHour) StoredRunHour {
	return StoredRunHour{
		RunHour:            hour,
		UploadAttemptCount: 0,
	}
}
