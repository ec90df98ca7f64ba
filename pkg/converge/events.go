package converge

type (
	// Sent once the number of files to converge is known.
	EventSetTotal int

	// Sent when work on a file starts. The value is the job key.
	EventConverging string

	// Sent when a file has been converged, or has failed.
	EventConverged struct {
		Err    error
		Key    string
		Status Status
	}

	// Sent when all work has completed.
	EventDone struct {
		Err error
	}
)
