// Package replayfile archives combat recordings on disk: a manifest
// describing the bundle next to the zstd-compressed instruction stream.
package replayfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"stellarsiege/client/internal/instructionlist"
)

// manifestVersion guards the archive layout.
const manifestVersion = 1

const (
	manifestName = "manifest.json"
	streamName   = "events.bin.zst"
)

var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Manifest describes one archived recording.
type Manifest struct {
	Version    int    `json:"version"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
	StreamPath string `json:"stream_path"`
}

// Save archives the recording under root and returns the bundle directory.
// The list is not consumed.
func Save(root, name string, list *instructionlist.StringInstructionList) (string, Manifest, error) {
	if root == "" {
		return "", Manifest{}, fmt.Errorf("replay root must be provided")
	}

	cleaned := nameCleaner.ReplaceAllString(name, "")
	if cleaned == "" {
		cleaned = "battle"
	}
	created := time.Now().UTC()
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", cleaned, created.Format("20060102T150405Z")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Manifest{}, err
	}

	//1.- Stream first, manifest last, so a bundle with a manifest is
	// always complete.
	streamPath := filepath.Join(dir, streamName)
	file, err := os.Create(streamPath)
	if err != nil {
		return "", Manifest{}, err
	}
	encoder, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return "", Manifest{}, err
	}
	if err := list.Encode(encoder); err != nil {
		encoder.Close()
		file.Close()
		return "", Manifest{}, err
	}
	if err := encoder.Close(); err != nil {
		file.Close()
		return "", Manifest{}, err
	}
	if err := file.Close(); err != nil {
		return "", Manifest{}, err
	}

	manifest := Manifest{
		Version:    manifestVersion,
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  created.Format(time.RFC3339Nano),
		StreamPath: streamName,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", Manifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), data, 0o644); err != nil {
		return "", Manifest{}, err
	}
	return dir, manifest, nil
}

// Load reads an archived recording. path may be the bundle directory or its
// manifest file.
func Load(path string) (*instructionlist.StringInstructionList, Manifest, error) {
	manifestPath := path
	info, err := os.Stat(path)
	if err != nil {
		return nil, Manifest{}, err
	}
	if info.IsDir() {
		manifestPath = filepath.Join(path, manifestName)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, Manifest{}, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, Manifest{}, err
	}
	if manifest.Version != manifestVersion {
		return nil, Manifest{}, fmt.Errorf("unsupported replay version %d", manifest.Version)
	}

	file, err := os.Open(filepath.Join(filepath.Dir(manifestPath), manifest.StreamPath))
	if err != nil {
		return nil, Manifest{}, err
	}
	defer file.Close()
	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, Manifest{}, err
	}
	defer decoder.Close()

	var list instructionlist.StringInstructionList
	if err := list.Decode(decoder); err != nil {
		return nil, Manifest{}, err
	}
	return &list, manifest, nil
}
