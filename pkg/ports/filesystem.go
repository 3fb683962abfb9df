// Package ports defines interfaces for the editor's external boundaries:
// the drawing surface, the file system used for downloads, the email relay,
// the preview browser and logging.
package ports

// FileSystem abstracts file system operations.
// Exports are delivered by writing the encoded image through it.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)
}
