// Package ttlreaper runs a periodic sweep that deletes Playbooks past their
// creation_timestamp + ttlSeconds, registered with the manager as a plain
// Runnable the same way the info controller registers its version poller.
package ttlreaper

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

// warnBeforeExpiry is how far ahead of expiry a Playbook gets a pre-expiry
// log line. The notification transport itself (chat, email, webhook) isn't
// implemented here; this just surfaces the signal through the same logger
// every other controller uses.
const warnBeforeExpiry = 3 * 24 * time.Hour

// Reaper periodically deletes Playbooks whose TTL has elapsed.
type Reaper struct {
	Client   client.Client
	Interval time.Duration
}

// DefaultInterval is how often the sweep runs outside of tests.
const DefaultInterval = 24 * time.Hour

// Start runs the sweep loop until ctx is cancelled, satisfying
// manager.Runnable.
func (r *Reaper) Start(ctx context.Context) error {
	log := ctrl.LoggerFrom(ctx).WithName("ttl-reaper")

	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.sweep(ctx, log); err != nil {
				log.Error(err, "ttl sweep failed")
			}
		}
	}
}

func (r *Reaper) sweep(ctx context.Context, log interface {
	Info(msg string, keysAndValues ...any)
	Error(err error, msg string, keysAndValues ...any)
}) error {
	list := &amphitheatrev1.PlaybookList{}
	if err := r.Client.List(ctx, list); err != nil {
		return err
	}

	now := time.Now()
	for i := range list.Items {
		playbook := &list.Items[i]
		if playbook.Spec.TTLSeconds == nil {
			continue
		}

		ttl := time.Duration(*playbook.Spec.TTLSeconds) * time.Second
		expiresAt := playbook.CreationTimestamp.Add(ttl)

		switch {
		case now.After(expiresAt):
			if err := r.Client.Delete(ctx, playbook); err != nil && !errors.IsNotFound(err) {
				return err
			}
			log.Info("deleted expired playbook", "playbook", playbook.Name, "expiredAt", expiresAt)
		case expiresAt.Sub(now) <= warnBeforeExpiry:
			log.Info("playbook nearing ttl expiry", "playbook", playbook.Name, "expiresAt", expiresAt)
		}
	}
	return nil
}
