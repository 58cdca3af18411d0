package asset

import "errors"

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrNoFiles          = errors.New("no files uploaded")
	ErrTooManyFiles     = errors.New("too many files")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
	ErrTypeNotSupported = errors.New("file type not supported")
)
