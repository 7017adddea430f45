package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirPerm = 0o755

// DefaultFolderName is the temp-folder name used when no override is
// configured. The folder is created under the current working directory.
const DefaultFolderName = "apks"

// Workdir is the temporary download workspace shared with the rest of the
// build system. Artifacts for a package live directly under the root,
// namespaced by the package identifier. The workspace is scratch space owned
// by the caller: Workdir creates files and directories but never deletes.
type Workdir struct {
	root string
}

func New(root string) *Workdir {
	return &Workdir{root: root}
}

// Root returns the absolute-or-relative workspace path as configured.
func (w *Workdir) Root() string {
	return w.root
}

// Name returns the workspace folder name, suitable for passing to external
// tools that are run from the workspace's parent directory.
func (w *Workdir) Name() string {
	return filepath.Base(w.root)
}

// ParentDir returns the directory containing the workspace folder.
func (w *Workdir) ParentDir() string {
	return filepath.Dir(w.root)
}

// Path returns the filesystem path for the given segments joined under the
// workspace root. Does not create or verify the path.
func (w *Workdir) Path(segments ...string) string {
	return filepath.Join(append([]string{w.root}, segments...)...)
}

// Exists reports whether the path at the given segments exists.
func (w *Workdir) Exists(segments ...string) (bool, error) {
	_, err := os.Stat(w.Path(segments...))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// EnsureRoot creates the workspace folder, including parents.
func (w *Workdir) EnsureRoot() error {
	if err := os.MkdirAll(w.root, dirPerm); err != nil {
		return fmt.Errorf("creating workspace %s: %w", w.root, err)
	}
	return nil
}

// Location is the on-disk form an artifact currently takes.
type Location int

const (
	// Missing means no artifact form exists yet.
	Missing Location = iota
	// SingleFile means the monolithic <pkg>.apk exists.
	SingleFile
	// Archive means the synthesized <pkg>.zip exists.
	Archive
	// Directory means the unpacked <pkg>/ split directory exists.
	Directory
)

func (l Location) String() string {
	switch l {
	case SingleFile:
		return "single file"
	case Archive:
		return "archive"
	case Directory:
		return "directory"
	default:
		return "missing"
	}
}

// Artifact holds the three candidate paths a download for one package can
// materialize as.
type Artifact struct {
	File string // <root>/<pkg>.apk
	Dir  string // <root>/<pkg>/
	Zip  string // <root>/<pkg>.zip
}

// Artifact derives the candidate artifact paths for a package identifier.
func (w *Workdir) Artifact(pkg string) Artifact {
	return Artifact{
		File: w.Path(pkg + ".apk"),
		Dir:  w.Path(pkg),
		Zip:  w.Path(pkg + ".zip"),
	}
}

// Locate reports which form of the artifact exists on disk, checking the
// single file first, then the archive, then the unpacked directory. At most
// one of the file and the archive is ever treated as authoritative; the
// directory only surfaces when neither packaged form exists yet.
func (a Artifact) Locate() (Location, error) {
	if _, err := os.Stat(a.File); err == nil {
		return SingleFile, nil
	} else if !os.IsNotExist(err) {
		return Missing, fmt.Errorf("checking %s: %w", a.File, err)
	}

	if _, err := os.Stat(a.Zip); err == nil {
		return Archive, nil
	} else if !os.IsNotExist(err) {
		return Missing, fmt.Errorf("checking %s: %w", a.Zip, err)
	}

	info, err := os.Stat(a.Dir)
	if err == nil && info.IsDir() {
		return Directory, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return Missing, fmt.Errorf("checking %s: %w", a.Dir, err)
	}
	return Missing, nil
}
