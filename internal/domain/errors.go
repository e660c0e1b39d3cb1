package domain

import "errors"

var (
	ErrEmptyRecord       = errors.New("source record is empty")
	ErrInvalidSourceData = errors.New("source data does not match expected format")
)
