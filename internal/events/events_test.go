package events

import (
	"testing"

	"github.com/onsi/gomega"
	"k8s.io/client-go/tools/record"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

func TestRecorder_Tracing(t *testing.T) {
	g := gomega.NewWithT(t)

	fake := record.NewFakeRecorder(1)
	r := NewRecorder(fake)
	playbook := &amphitheatrev1.Playbook{}
	playbook.Name = "demo"

	r.Tracing(playbook, "resolved character graph")

	g.Expect(<-fake.Events).To(gomega.Equal("Normal Tracing resolved character graph"))
}

func TestRecorder_Reconciling(t *testing.T) {
	g := gomega.NewWithT(t)

	fake := record.NewFakeRecorder(1)
	r := NewRecorder(fake)
	actor := &amphitheatrev1.Actor{}
	actor.Name = "web"

	r.Reconciling(actor, "waiting for build to complete")

	g.Expect(<-fake.Events).To(gomega.Equal("Normal Reconciling waiting for build to complete"))
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	playbook := &amphitheatrev1.Playbook{}

	// must not panic when no recorder was wired.
	r.Tracing(playbook, "noop")
	r.Reconciling(playbook, "noop")
}
