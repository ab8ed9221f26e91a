// Package streaming wraps the NATS JetStream handle carried through every
// workflow Context, shared immutably across reconciles. The core never
// publishes or consumes file-sync messages itself; it only owns the
// per-Playbook stream's lifecycle, created by the Playbook controller's
// Initial state and torn down by its finalizer, since owner references
// don't reach an external system like a JetStream stream.
package streaming

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Handle is a thin wrapper over a connected JetStream context.
type Handle struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// Connect dials url and returns a Handle. A nil Handle (url == "") is
// valid: EnsureStream/DeleteStream become no-ops, which is the correct
// behavior when NATS is not configured for this deployment.
func Connect(ctx context.Context, url string) (*Handle, error) {
	if url == "" {
		return nil, nil
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	return &Handle{nc: nc, js: js}, nil
}

// Close releases the underlying NATS connection.
func (h *Handle) Close() {
	if h != nil && h.nc != nil {
		h.nc.Close()
	}
}

// StreamName deterministically names the stream associated with a Playbook
// id, mirroring its namespace naming: one stream per Playbook, named after
// its id.
func StreamName(playbookID string) string {
	return "amp-playbook-" + playbookID
}

// EnsureStream creates the named stream if it does not already exist. The
// file-sync transport that publishes into it is an external collaborator;
// this repository only guarantees the stream exists for it to use.
func (h *Handle) EnsureStream(ctx context.Context, playbookID string) error {
	if h == nil {
		return nil
	}
	name := StreamName(playbookID)
	_, err := h.js.Stream(ctx, name)
	if err == nil {
		return nil
	}
	_, err = h.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: []string{name + ".>"},
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", name, err)
	}
	return nil
}

// DeleteStream removes the stream associated with playbookID, if present.
// Called from the Playbook controller's finalizer.
func (h *Handle) DeleteStream(ctx context.Context, playbookID string) error {
	if h == nil {
		return nil
	}
	name := StreamName(playbookID)
	if err := h.js.DeleteStream(ctx, name); err != nil {
		if err == jetstream.ErrStreamNotFound {
			return nil
		}
		return fmt.Errorf("delete stream %s: %w", name, err)
	}
	return nil
}
