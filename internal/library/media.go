package library

import "time"

// FileType classifies a library entry.
type FileType string

const (
	FileTypeImage  FileType = "image"
	FileTypeVideo  FileType = "video"
	FileTypeFolder FileType = "folder"
)

// KnownFileTypes is the number of distinct FileType values. The filter layer
// uses it to tell "every type selected" apart from a narrowing selection.
const KnownFileTypes = 3

// ParseFileType validates a raw type string.
func ParseFileType(raw string) (FileType, bool) {
	switch FileType(raw) {
	case FileTypeImage, FileTypeVideo, FileTypeFolder:
		return FileType(raw), true
	default:
		return "", false
	}
}

// MediaFile is one entry in a browsed directory. Only cheap stat-level
// attributes live here; tags and ratings are resolved through the Store.
type MediaFile struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Type    FileType  `json:"type"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Folder is a browsable directory entry. Folders are filtered, never ranked,
// so they carry no size or type information.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
