package service

import "errors"

var (
	ErrValidation              = errors.New("validation")
	ErrNotFound                = errors.New("not found")
	ErrConfigurationMissing    = errors.New("consumption configuration missing")
	ErrPremiseValidationFailed = errors.New("premise validation failed")
	ErrNotEditing              = errors.New("form is not in edit mode")
)
