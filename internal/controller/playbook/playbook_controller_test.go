package playbook

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/condition"
	"github.com/amphitheatre-app/amphitheatre/internal/constant"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
	"github.com/amphitheatre-app/amphitheatre/internal/events"
	"github.com/amphitheatre-app/amphitheatre/internal/resolver"
)

// stubSCM is an in-memory scm.Client for controller tests that must drive
// a real resolver one partner-fetch ring at a time without reaching the
// network. Every repository's default branch resolves to "main" and every
// reference resolves to commit "deadbeef", mirroring internal/resolver's
// own fakeSCM.
type stubSCM struct {
	manifests map[string][]byte
}

func (s *stubSCM) FindCommit(ctx context.Context, repo, reference string) (string, error) {
	return "deadbeef", nil
}

func (s *stubSCM) DefaultBranch(ctx context.Context, repo string) (string, error) {
	return "main", nil
}

func (s *stubSCM) FetchFile(ctx context.Context, repo, ref, path string) ([]byte, error) {
	raw, ok := s.manifests[fmt.Sprintf("%s@%s:%s", repo, ref, path)]
	if !ok {
		return nil, fmt.Errorf("no manifest for %s@%s:%s", repo, ref, path)
	}
	return raw, nil
}

func newPlaybookScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	g := gomega.NewWithT(t)
	g.Expect(clientgoscheme.AddToScheme(scheme)).To(gomega.Succeed())
	g.Expect(amphitheatrev1.AddToScheme(scheme)).To(gomega.Succeed())
	return scheme
}

// TestReconcile_ResolvesOneRingPerPass drives a Playbook whose preface
// character declares a partner "leaf" that in turn declares a partner
// "twig". Initial resolves the preface and appends it, then each
// Resolving pass fetches exactly one ring of not-yet-present partners per
// spec.md §4.2 (steps 1-4): the state only advances to Running once a
// pass's pending set comes back empty, so a two-level partner chain takes
// three Resolving passes (two that fetch a ring, one that finds nothing
// pending), not one internal fixed-point loop.
func TestReconcile_ResolvesOneRingPerPass(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newPlaybookScheme(t)

	pb := &amphitheatrev1.Playbook{}
	pb.Name = "demo"
	pb.Namespace = "default"
	pb.Spec = amphitheatrev1.PlaybookSpec{
		Title: "Demo",
		Preface: amphitheatrev1.PrefaceSpec{
			Inline: &amphitheatrev1.CharacterSpec{
				Meta: amphitheatrev1.CharacterMeta{Name: "root"},
				Partners: map[string]amphitheatrev1.PartnerReference{
					"leaf": {Repo: "repo-leaf"},
				},
			},
		},
	}

	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(pb).WithStatusSubresource(pb).Build()
	scm := &stubSCM{manifests: map[string][]byte{
		"repo-leaf@deadbeef:amp.toml": []byte("[meta]\nname=\"leaf\"\n[partners.twig]\nrepo=\"repo-twig\"\n"),
		"repo-twig@deadbeef:amp.toml": []byte("[meta]\nname=\"twig\"\n"),
	}}

	r := &Reconciler{
		Client:      c,
		Scheme:      scheme,
		Resolver:    resolver.NewResolver(scm, nil),
		Recorder: events.NewRecorder(nil),
		Credentials: credentials.NewStore(credentials.Credentials{
			Registries: []credentials.Registry{{Server: credentials.DockerIndexServer, Username: "acme", Default: true}},
		}),
		Stream: nil,
	}

	req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "demo"}}
	reconcile := func() *amphitheatrev1.Playbook {
		_, err := r.Reconcile(ctrl.LoggerInto(context.Background(), logr.Discard()), req)
		g.Expect(err).NotTo(gomega.HaveOccurred())
		got := &amphitheatrev1.Playbook{}
		g.Expect(c.Get(context.Background(), req.NamespacedName, got)).To(gomega.Succeed())
		return got
	}

	// First reconcile: Initial appends "root" and hands off to Resolving,
	// whose first pass fetches "root"'s one declared partner, "leaf".
	// "twig" (declared by "leaf", not yet present) is left for the next
	// pass, so the object is still Resolving.
	got := reconcile()
	g.Expect(got.Finalizers).To(gomega.ContainElement(constant.PlaybookFinalizer))
	g.Expect(condition.IsTrue(got, amphitheatrev1.PlaybookConditionResolving)).To(gomega.BeTrue())
	g.Expect(charNames(got)).To(gomega.ConsistOf("root", "leaf"))

	// Second reconcile: the next pass fetches "twig", the only name still
	// missing; still Resolving, since this pass's own pending set wasn't
	// known to be empty in advance.
	got = reconcile()
	g.Expect(condition.IsTrue(got, amphitheatrev1.PlaybookConditionResolving)).To(gomega.BeTrue())
	g.Expect(charNames(got)).To(gomega.ConsistOf("root", "leaf", "twig"))

	// Third reconcile: every partner name is now present, so this pass's
	// pending set is empty and the Playbook advances to Running.
	got = reconcile()
	g.Expect(condition.IsTrue(got, amphitheatrev1.PlaybookConditionRunning)).To(gomega.BeTrue())
	g.Expect(charNames(got)).To(gomega.ConsistOf("root", "leaf", "twig"))
}

func charNames(pb *amphitheatrev1.Playbook) []string {
	names := make([]string, len(pb.Spec.Characters))
	for i, c := range pb.Spec.Characters {
		names[i] = c.Meta.Name
	}
	return names
}

func TestReconcile_FinalizeRemovesFinalizer(t *testing.T) {
	g := gomega.NewWithT(t)
	scheme := newPlaybookScheme(t)

	pb := &amphitheatrev1.Playbook{}
	pb.Name = "demo"
	pb.Namespace = "default"
	pb.Finalizers = []string{constant.PlaybookFinalizer}
	now := metav1.Now()
	pb.DeletionTimestamp = &now

	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(pb).WithStatusSubresource(pb).Build()

	r := &Reconciler{
		Client:      c,
		Scheme:      scheme,
		Recorder:    events.NewRecorder(nil),
		Credentials: credentials.NewStore(credentials.Credentials{}),
		Stream:      nil,
	}

	_, err := r.Reconcile(ctrl.LoggerInto(context.Background(), logr.Discard()), ctrl.Request{
		NamespacedName: types.NamespacedName{Namespace: "default", Name: "demo"},
	})
	g.Expect(err).NotTo(gomega.HaveOccurred())

	got := &amphitheatrev1.Playbook{}
	err = c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "demo"}, got)
	g.Expect(err).To(gomega.HaveOccurred())
}
