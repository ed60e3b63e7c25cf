package domain

import "time"

// Project is one long-form writing project. Its blocks form a single
// document; the project row itself carries only identity and bookkeeping.
type Project struct {
	// ID is the unique project identifier.
	ID string

	// Name is the human-readable project title.
	Name string

	// CreatedAt is when the project was created.
	CreatedAt time.Time

	// UpdatedAt is when any block of the project was last touched.
	UpdatedAt time.Time
}
