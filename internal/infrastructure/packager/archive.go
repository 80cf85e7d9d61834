package packager

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"time"
)

// archiveTime is the modification time of every archive entry, so that equal
// inputs produce byte identical archives.
var archiveTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var fileOrder = map[string]int{
	FileDockerfile:   0,
	FileMakefile:     1,
	FileReadme:       2,
	FileDependencies: 3,
	FileInstall:      4,
	FileNotebook:     5,
}

// File is one entry of a package archive.
type File struct {
	Name string
	Data []byte
}

func sortFiles(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		return fileOrder[files[i].Name] < fileOrder[files[j].Name]
	})
}

func zipFiles(files []File) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range files {
		header := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: archiveTime,
		}
		header.SetMode(0o644)

		entry, err := w.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return buf.Bytes(), nil
}
