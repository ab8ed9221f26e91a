package hashutil

import (
	"testing"

	"github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/amphitheatre-app/amphitheatre/internal/constant"
)

func TestOf_DeterministicForEqualValues(t *testing.T) {
	g := gomega.NewWithT(t)

	type spec struct {
		Image string
		Env   map[string]string
	}
	a := spec{Image: "r/u/img", Env: map[string]string{"FOO": "bar"}}
	b := spec{Image: "r/u/img", Env: map[string]string{"FOO": "bar"}}

	ha, err := Of(a)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	hb, err := Of(b)
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(ha).To(gomega.Equal(hb))
}

func TestOf_DiffersForDifferentValues(t *testing.T) {
	g := gomega.NewWithT(t)

	ha, _ := Of("a")
	hb, _ := Of("b")

	g.Expect(ha).NotTo(gomega.Equal(hb))
}

func TestNeedsUpdate(t *testing.T) {
	g := gomega.NewWithT(t)

	hash, _ := Of("desired")
	cm := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{
		Annotations: map[string]string{constant.LastAppliedHashAnnotation: hash},
	}}

	g.Expect(NeedsUpdate(cm, hash)).To(gomega.BeFalse())
	g.Expect(NeedsUpdate(cm, "other")).To(gomega.BeTrue())
}

func TestStamp(t *testing.T) {
	g := gomega.NewWithT(t)

	cm := &corev1.ConfigMap{}
	Stamp(cm, "abc123")

	g.Expect(cm.Annotations[constant.LastAppliedHashAnnotation]).To(gomega.Equal("abc123"))
}
