package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListOptions controls directory enumeration. Extension sets decide how
// entries classify; anything matching neither set is skipped, mirroring how
// the browser only surfaces media it can display.
type ListOptions struct {
	ImageExtensions []string
	VideoExtensions []string
	Recursive       bool
}

// List enumerates a directory into files and folders. It reads names, sizes,
// and modification times only; file contents are never opened. Unreadable
// subdirectories end the walk with an error rather than a partial listing.
func List(dir string, opts ListOptions) ([]MediaFile, []Folder, error) {
	imageSet := extensionSet(opts.ImageExtensions)
	videoSet := extensionSet(opts.VideoExtensions)

	var files []MediaFile
	var folders []Folder

	var walk func(current string) error
	walk = func(current string) error {
		entries, err := os.ReadDir(current)
		if err != nil {
			return fmt.Errorf("read directory %q: %w", current, err)
		}
		for _, entry := range entries {
			full := filepath.Join(current, entry.Name())
			if entry.IsDir() {
				folders = append(folders, Folder{Name: entry.Name(), Path: full})
				if opts.Recursive {
					if err := walk(full); err != nil {
						return err
					}
				}
				continue
			}
			fileType, ok := classify(entry.Name(), imageSet, videoSet)
			if !ok {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					// Entry vanished between ReadDir and Info.
					continue
				}
				return fmt.Errorf("stat %q: %w", full, err)
			}
			files = append(files, MediaFile{
				Name:    entry.Name(),
				Path:    full,
				Type:    fileType,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
		return nil
	}

	if err := walk(dir); err != nil {
		return nil, nil, err
	}
	return files, folders, nil
}

func classify(name string, images, videos map[string]struct{}) (FileType, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", false
	}
	if _, ok := images[ext]; ok {
		return FileTypeImage, true
	}
	if _, ok := videos[ext]; ok {
		return FileTypeVideo, true
	}
	return "", false
}

func extensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}
