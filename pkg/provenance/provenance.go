package provenance

import (
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"
)

// Record describes where an artifact came from. It is written as a YAML
// sidecar next to the artifact so later build steps can attribute a file to
// its source without re-running the fetch. The URI does not imply version
// accuracy; sources that cannot pin versions record a version-free URI.
type Record struct {
	Artifact  string    `json:"artifact"`
	Package   string    `json:"package"`
	URI       string    `json:"uri"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// SidecarName returns the sidecar filename for an artifact file name.
func SidecarName(artifact string) string {
	return artifact + ".provenance.yaml"
}

// Write marshals the record to path as YAML.
func Write(path string, rec Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling provenance record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read loads a record from path.
func Read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}
