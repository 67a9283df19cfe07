package models

// ChangeType classifies why an entry differs between the two endpoints
type ChangeType string

const (
	// ChangeAdded indicates the entry exists in the source only
	ChangeAdded ChangeType = "added"
	// ChangeDeleted indicates the entry exists in the destination only
	ChangeDeleted ChangeType = "deleted"
	// ChangeModified indicates content (checksum or size) differs
	ChangeModified ChangeType = "modified"
	// ChangePermissions indicates only mode/ownership differs
	ChangePermissions ChangeType = "permissions-only"
	// ChangeTypeChanged indicates the entry kind differs between sides
	ChangeTypeChanged ChangeType = "type-changed"
	// ChangeUnknown indicates a recognized entry line whose flag
	// combination maps to no other type
	ChangeUnknown ChangeType = "unknown"
)

// AllChangeTypes lists every change type in rendering order
var AllChangeTypes = []ChangeType{
	ChangeAdded,
	ChangeDeleted,
	ChangeModified,
	ChangePermissions,
	ChangeTypeChanged,
	ChangeUnknown,
}

// EntryKind identifies what kind of filesystem entry a record refers to
type EntryKind string

const (
	KindFile    EntryKind = "file"
	KindDir     EntryKind = "directory"
	KindSymlink EntryKind = "symlink"
	KindOther   EntryKind = "other"
)

// ChangeRecord represents one classified difference between the two
// endpoints at a single relative path
type ChangeRecord struct {
	// Type is the classified change
	Type ChangeType

	// Kind is the entry kind (file, directory, symlink, other)
	Kind EntryKind

	// Path is the slash-separated path relative to the compared root,
	// never empty after parsing
	Path string

	// Size in bytes; valid only when SizeKnown is true. The probe does
	// not report sizes for deletions.
	Size int64

	// SizeKnown indicates whether Size was present and well-formed
	SizeKnown bool
}
