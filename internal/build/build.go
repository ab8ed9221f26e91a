// Package build implements the build director and the six builder
// strategies chosen by source location, build method, and the live flag:
// a Kaniko-driven batch Job for Dockerfile builds, a kpack Image CR for
// non-live Buildpacks builds, and a long-running syncer Pod for both
// methods in live mode.
package build

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	amphitheatrev1 "github.com/amphitheatre-app/amphitheatre/api/v1"
	"github.com/amphitheatre-app/amphitheatre/internal/credentials"
)

// PrepareBackoff is the requeue delay the Building state uses when Prepare
// reports a prerequisite isn't Ready yet.
const PrepareBackoff = 5 * time.Second

// Builder is the three-operation contract every strategy implements:
// Prepare ensures prerequisites exist and are Ready (returning ok=false
// when the caller should wait and retry), Build creates or updates the
// thing that actually builds the image, and Completed reports whether that
// build has finished successfully.
type Builder interface {
	// Prepare returns ok=false when a prerequisite isn't Ready yet; the
	// caller requeues after PrepareBackoff in that case without treating it
	// as an error.
	Prepare(ctx context.Context) (ok bool, err error)
	Build(ctx context.Context) error
	Completed(ctx context.Context) (bool, error)
}

// Director holds the single Builder selected for one Actor and forwards
// every call to it; the selection itself is not user-visible to callers.
type Director struct {
	Builder Builder
}

func (d *Director) Prepare(ctx context.Context) (bool, error) { return d.Builder.Prepare(ctx) }
func (d *Director) Build(ctx context.Context) error            { return d.Builder.Build(ctx) }
func (d *Director) Completed(ctx context.Context) (bool, error) { return d.Builder.Completed(ctx) }

// Deps bundles what every builder strategy needs to talk to the cluster.
type Deps struct {
	Client client.Client
	Scheme *runtime.Scheme
}

// Select returns the Builder strategy for actor: Dockerfile always builds
// via Kaniko, Buildpacks via kpack's ClusterBuilder machinery; either
// method switches from a batch Job/kpack Image to a long-running syncer
// Pod once actor.Spec.Live is true.
func Select(deps Deps, actor *amphitheatrev1.Actor, creds credentials.Credentials) Builder {
	method := actor.Spec.Build.Method()

	if actor.Spec.Live {
		return &LiveBuilder{Deps: deps, Actor: actor, Method: method}
	}
	if method == amphitheatrev1.BuildMethodBuildpacks {
		return &KpackBuilder{Deps: deps, Actor: actor}
	}
	return &KanikoJobBuilder{Deps: deps, Actor: actor}
}
