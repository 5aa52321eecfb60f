// Package manifest records what a generation run consumed and produced, so
// two runs can be compared without diffing the output tree.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Status values stored in a manifest.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// GenerationManifest is a complete record of one run.
type GenerationManifest struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Inputs    Inputs    `json:"inputs"`
	Outputs   Outputs   `json:"outputs"`
	Status    string    `json:"status"`
	Duration  int64     `json:"duration_ms"`
}

// Inputs captures the content hashes of everything the run read.
type Inputs struct {
	DocletsHash    string `json:"doclets_hash"`
	ConfigHash     string `json:"config_hash,omitempty"`
	TemplateHash   string `json:"template_hash"`
	SourceRevision string `json:"source_revision,omitempty"`
}

// Artifact is one written file.
type Artifact struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	SHA256 string `json:"sha256"`
}

type Outputs struct {
	Files   []Artifact `json:"files"`
	Links   int        `json:"links"`
	Dropped int        `json:"dropped_doclets"`
}

// New starts a manifest with a fresh ID.
func New(version string, now time.Time) *GenerationManifest {
	return &GenerationManifest{
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
		Version:   version,
	}
}

// ToJSON serializes the manifest to JSON.
func (m *GenerationManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*GenerationManifest, error) {
	var m GenerationManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Write stores the manifest at path.
func (m *GenerationManifest) Write(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Hash is a digest of the inputs only. Runs over identical inputs share it
// regardless of ID, time or outcome.
func (m *GenerationManifest) Hash() (string, error) {
	data, err := json.Marshal(m.Inputs)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// HashFile returns the hex SHA-256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
