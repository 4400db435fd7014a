package library

import "errors"

var (
	// ErrCatalogFolderNesting is returned when a catalog-item folder would
	// be placed under another catalog-item folder, or given children.
	ErrCatalogFolderNesting = errors.New("catalog-item folders cannot nest")

	// ErrParentNotFound is returned when a folder operation references a
	// parent id that does not exist in the tree.
	ErrParentNotFound = errors.New("parent folder not found")
)
