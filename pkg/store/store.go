package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/errors"
)

// Store is the persistence interface for diagrams.
type Store interface {
	// Put saves a diagram and returns its id. A diagram without an id is
	// assigned a fresh one; putting an existing id overwrites.
	Put(ctx context.Context, d diagram.Diagram) (string, error)

	// Get loads a diagram by id.
	Get(ctx context.Context, id string) (diagram.Diagram, error)

	// List returns summaries of all stored diagrams.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes a diagram by id.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Entry is a listing summary for one stored diagram.
type Entry struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Nodes int    `json:"nodes"`
}

// notFound is the shared not-found error all backends return from Get and
// Delete.
func notFound(id string) error {
	return errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
}

// assignID fills in a fresh uuid when the diagram has none.
func assignID(d *diagram.Diagram) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
}

// Fingerprint returns the SHA-256 content hash of a diagram's canonical JSON
// form. Identical circuits produce identical fingerprints regardless of
// storage id.
func Fingerprint(d diagram.Diagram) (string, error) {
	d.ID = ""
	data, err := diagram.Marshal(d)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
