package constants

// ReportStatus is the canonical status for rows in lab_report.
type ReportStatus string

// Stable values (store these exact strings in DB).
const (
	ReportStatusQueued    ReportStatus = "QUEUED"    // waiting for a worker
	ReportStatusRunning   ReportStatus = "RUNNING"   // extraction in progress
	ReportStatusExtracted ReportStatus = "EXTRACTED" // at least one value survived filtering
	ReportStatusEmpty     ReportStatus = "EMPTY"     // extraction ran, nothing usable found
	ReportStatusFailed    ReportStatus = "FAILED"    // terminal failure (storage or I/O, not extraction)
)
