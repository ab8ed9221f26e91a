package ttlreaper

import (
	"context"
	"testing"
	"time"

	"github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
)

func TestReaper_DeletesExpiredPlaybook(t *testing.T) {
	g := gomega.NewWithT(t)

	scheme := runtime.NewScheme()
	g.Expect(amphitheatrev1.AddToScheme(scheme)).To(gomega.Succeed())

	expired := &amphitheatrev1.Playbook{
		ObjectMeta: metav1.ObjectMeta{
			Name:              "expired",
			CreationTimestamp: metav1.NewTime(time.Now().Add(-2 * time.Hour)),
		},
		Spec: amphitheatrev1.PlaybookSpec{TTLSeconds: ptr.To(int64(3600))},
	}
	fresh := &amphitheatrev1.Playbook{
		ObjectMeta: metav1.ObjectMeta{
			Name:              "fresh",
			CreationTimestamp: metav1.NewTime(time.Now()),
		},
		Spec: amphitheatrev1.PlaybookSpec{TTLSeconds: ptr.To(int64(3600))},
	}
	noTTL := &amphitheatrev1.Playbook{
		ObjectMeta: metav1.ObjectMeta{Name: "no-ttl"},
	}

	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(expired, fresh, noTTL).Build()
	r := &Reaper{Client: c}

	g.Expect(r.sweep(context.Background(), discardLogger{})).To(gomega.Succeed())

	list := &amphitheatrev1.PlaybookList{}
	g.Expect(c.List(context.Background(), list)).To(gomega.Succeed())
	names := make([]string, len(list.Items))
	for i, p := range list.Items {
		names[i] = p.Name
	}
	g.Expect(names).To(gomega.ConsistOf("fresh", "no-ttl"))
}

type discardLogger struct{}

func (discardLogger) Info(string, ...any)         {}
func (discardLogger) Error(error, string, ...any) {}
