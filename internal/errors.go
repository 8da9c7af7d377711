package internal

import "fmt"

// StoreNotFoundError indicates no chat storage file could be located.
type StoreNotFoundError struct {
	SearchPath string
}

func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("no chat storage found under %s (open a workspace in Cursor and start a chat first)", e.SearchPath)
}

// DecodeError indicates a single stored record's value could not be decoded.
// Decode failures are isolated: the record is skipped and the export continues.
type DecodeError struct {
	Store string
	Key   string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s] %s: %v", e.Store, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError indicates no record matched any known conversation schema.
type SchemaMismatchError struct {
	Records int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("no recognized conversation schema in %d record(s)", e.Records)
}

// WriteError indicates the rendered document could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
