package session

import (
	"carbonfront/internal/columns"
	"carbonfront/internal/domain"
	"carbonfront/internal/rowset"
)

// SingleState is the page state of the single-document workflow.
type SingleState struct {
	Methodology domain.Methodology
	File        *domain.FileInfo
	Shape       string
	Rows        rowset.RowSet
	Registry    *columns.Registry
	Summary     *rowset.Summary
	Error       string
	Loading     bool

	generation uint64
}

// NewSingleState returns a fresh single-document state with the default
// methodology selected.
func NewSingleState() *SingleState {
	return &SingleState{Methodology: domain.DefaultMethodology}
}

// HasResult reports whether a row set is ready for curation.
func (s *SingleState) HasResult() bool {
	return len(s.Rows) > 0 && s.Registry != nil
}

// BulkState is the page state of the bulk workflow.
type BulkState struct {
	Methodology domain.Methodology
	File        *domain.FileInfo
	Stats       domain.BulkStats
	Result      *domain.BulkResult
	Success     bool
	Error       string
	Loading     bool

	generation uint64
}

// NewBulkState returns a fresh bulk state with the default methodology
// selected.
func NewBulkState() *BulkState {
	return &BulkState{Methodology: domain.DefaultMethodology}
}

// Downloadable reports whether an unserved result body is still held.
func (s *BulkState) Downloadable() bool {
	return s.Result != nil
}
