package repository

import "errors"

// ErrNotFound is returned when a query for a single transcript finds no rows.
// The service layer translates it into app_errors.ErrNotFound so callers never
// see the driver's sql.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")
