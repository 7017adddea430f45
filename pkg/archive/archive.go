package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ZipDir writes a deflate-compressed zip of every file under dir to dest.
// Entry names are recorded relative to base, so a base one level above dir
// prefixes every entry with dir's folder name. Files are added in sorted
// path order for reproducible output.
func ZipDir(dest, dir, base string) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Strings(files)

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range files {
		if err := addFile(zw, f, base); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", dest, err)
	}
	return out.Close()
}

func addFile(zw *zip.Writer, path, base string) error {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return fmt.Errorf("relativizing %s: %w", path, err)
	}

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   filepath.ToSlash(rel),
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("adding %s: %w", rel, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
