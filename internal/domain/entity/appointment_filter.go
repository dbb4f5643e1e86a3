package entity

import "time"

// AppointmentFilter narrows appointment list queries.
type AppointmentFilter struct {
	Status    *AppointmentStatus
	Type      *AppointmentType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// Normalize applies pagination defaults.
func (f *AppointmentFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 10
	}
}
