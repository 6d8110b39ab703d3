// Package kernel is the external API surface: the single mutable owner of
// a topology model, sketch set and naming strategy, exposing the
// operations spec.md 6 lists (sketch editing/solving, profile extraction,
// extrude/revolve, booleans, healing, tessellation) behind Result-shaped
// returns (spec.md 7).
package kernel

import (
	"errors"
	"fmt"

	"github.com/samwillis/solidtype-sub007/boolean"
	"github.com/samwillis/solidtype-sub007/heal"
	"github.com/samwillis/solidtype-sub007/naming"
	"github.com/samwillis/solidtype-sub007/profile"
	"github.com/samwillis/solidtype-sub007/sketch"
	"github.com/samwillis/solidtype-sub007/solver"
	"github.com/samwillis/solidtype-sub007/sweep"
	"github.com/samwillis/solidtype-sub007/tessellate"
	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
	"github.com/samwillis/solidtype-sub007/vec/conv"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
)

// ErrorKind is the string-enum spec.md 7's error table maps onto.
type ErrorKind string

const (
	KindNone                    ErrorKind = ""
	KindInvalidHandle           ErrorKind = "InvalidHandle"
	KindNonClosedLoop           ErrorKind = "NonClosedLoop"
	KindNonPlanarFace           ErrorKind = "NonPlanarFace"
	KindSolverSingular          ErrorKind = "SolverSingular"
	KindNotConverged            ErrorKind = "NotConverged"
	KindEmptyResult             ErrorKind = "EmptyResult"
	KindNonManifoldEdge         ErrorKind = "NonManifoldEdge"
	KindHealingIntroducedErrors ErrorKind = "HealingIntroducedErrors"
)

// Result is the uniform return shape every Kernel operation uses (spec.md
// 6): a typed payload plus success/error/warning metadata.
type Result[T any] struct {
	Success  bool
	Kind     ErrorKind
	Error    string
	Warnings []string
	Value    T
}

func ok[T any](v T, warnings []string) Result[T] {
	return Result[T]{Success: true, Value: v, Warnings: warnings}
}

func fail[T any](kind ErrorKind, err error) Result[T] {
	return Result[T]{Success: false, Kind: kind, Error: err.Error()}
}

// Kernel is the single mutable owner (SPEC_FULL.md 7): one topology model,
// one naming strategy, one tolerance context, shared by every operation.
type Kernel struct {
	Model        *topo.Model
	Naming       *naming.Strategy
	Tol          tol.Context
	sketches     map[int]*sketch.Sketch
	nextSketchId int
}

// NewKernel returns an empty Kernel with default tolerances.
func NewKernel() *Kernel {
	m := topo.NewModel()
	return &Kernel{
		Model:    m,
		Naming:   naming.NewStrategy(m),
		Tol:      tol.Default(),
		sketches: make(map[int]*sketch.Sketch),
	}
}

// SketchId identifies a sketch owned by this Kernel.
type SketchId int

// NewSketch creates and registers a sketch on the given plane, returning
// its id.
func (k *Kernel) NewSketch(plane sketch.Plane) SketchId {
	k.nextSketchId++
	id := SketchId(k.nextSketchId)
	k.sketches[int(id)] = sketch.New(plane)
	return id
}

// Sketch returns the live sketch for id, or an error if unknown.
func (k *Kernel) Sketch(id SketchId) (*sketch.Sketch, error) {
	sk, ok := k.sketches[int(id)]
	if !ok {
		return nil, fmt.Errorf("kernel: unknown sketch %d", id)
	}
	return sk, nil
}

// SolveSketch runs the constraint solver over id's sketch in place.
func (k *Kernel) SolveSketch(id SketchId, opts solver.Options) Result[solver.Result] {
	sk, err := k.Sketch(id)
	if err != nil {
		return fail[solver.Result](KindInvalidHandle, err)
	}
	res, err := solver.Solve(sk, nil, opts)
	if err != nil {
		return fail[solver.Result](KindSolverSingular, err)
	}
	kind := KindNone
	switch res.Status {
	case solver.StatusSingular:
		kind = KindSolverSingular
	case solver.StatusNotConverged:
		kind = KindNotConverged
	}
	return Result[solver.Result]{Success: true, Kind: kind, Value: res}
}

// ProfileFromSketch extracts a profile from id's sketch.
func (k *Kernel) ProfileFromSketch(id SketchId) Result[profile.Profile] {
	sk, err := k.Sketch(id)
	if err != nil {
		return fail[profile.Profile](KindInvalidHandle, err)
	}
	prof, err := profile.FromSketch(sk, k.Tol.Length)
	if err != nil {
		return fail[profile.Profile](KindNonClosedLoop, err)
	}
	return ok(prof, nil)
}

// FeatureResult is the payload an extrude/revolve operation returns: the
// new body plus the persistent references generated for its faces.
type FeatureResult struct {
	Body      topo.BodyId
	FeatureId string
	FaceRefs  []naming.PersistentRef
}

// Extrude builds prof by distance along the sketch plane's normal, grafts
// the result into Kernel's shared model, and generates a persistent
// reference for every produced face (spec.md 4.4, 4.8).
func (k *Kernel) Extrude(id SketchId, prof profile.Profile, distance float64) Result[FeatureResult] {
	sk, err := k.Sketch(id)
	if err != nil {
		return fail[FeatureResult](KindInvalidHandle, err)
	}
	srcModel, srcBody, srcFaceLoopId, err := sweep.Extrude(sk, prof, sk.Plane, distance)
	if err != nil {
		return fail[FeatureResult](KindNonClosedLoop, err)
	}
	body, faceMap, err := graft(k.Model, srcModel, srcBody)
	if err != nil {
		return fail[FeatureResult](KindInvalidHandle, err)
	}
	faceLoopId := make(map[topo.FaceId]naming.LoopId, len(srcFaceLoopId))
	for srcFc, loopId := range srcFaceLoopId {
		faceLoopId[faceMap[srcFc]] = loopId
	}

	dir := sk.Plane.Normal
	featureId := k.Naming.AllocFeatureId()
	refs, err := k.generateFaceRefs(body, featureId, func(fc topo.FaceId) (string, map[string]any, error) {
		kindStr, err := naming.ClassifyExtrudeFace(k.Model, fc, dir)
		if err != nil {
			return "", nil, err
		}
		var data map[string]any
		if loopId, ok := faceLoopId[fc]; ok {
			data = map[string]any{"loopId": loopId.String()}
		}
		return kindStr, data, nil
	})
	if err != nil {
		return fail[FeatureResult](KindInvalidHandle, err)
	}
	return ok(FeatureResult{Body: body, FeatureId: featureId, FaceRefs: refs}, nil)
}

// Revolve sweeps prof about the given in-plane axis by angleDeg degrees
// (spec.md 6: angles are degrees at the kernel boundary, converted to
// radians internally), grafts the result and generates persistent
// references (spec.md 4.5, 4.8).
func (k *Kernel) Revolve(id SketchId, prof profile.Profile, axisOrigin, axisDir v2.Vec, angleDeg float64) Result[FeatureResult] {
	sk, err := k.Sketch(id)
	if err != nil {
		return fail[FeatureResult](KindInvalidHandle, err)
	}
	srcModel, srcBody, err := sweep.Revolve(sk, prof, sk.Plane, axisOrigin, axisDir, conv.DtoR(angleDeg))
	if err != nil {
		return fail[FeatureResult](KindNonClosedLoop, err)
	}
	body, _, err := graft(k.Model, srcModel, srcBody)
	if err != nil {
		return fail[FeatureResult](KindInvalidHandle, err)
	}

	featureId := k.Naming.AllocFeatureId()
	refs, err := k.generateFaceRefs(body, featureId, func(fc topo.FaceId) (string, map[string]any, error) {
		return naming.RevolveRole(false, false), nil, nil
	})
	if err != nil {
		return fail[FeatureResult](KindInvalidHandle, err)
	}
	return ok(FeatureResult{Body: body, FeatureId: featureId, FaceRefs: refs}, nil)
}

func (k *Kernel) generateFaceRefs(body topo.BodyId, featureId string, classify func(topo.FaceId) (string, map[string]any, error)) ([]naming.PersistentRef, error) {
	var refs []naming.PersistentRef
	var outerErr error
	err := k.Model.BodyShells(body, func(sh topo.ShellId) {
		_ = k.Model.ShellFaces(sh, func(fc topo.FaceId) {
			if outerErr != nil {
				return
			}
			kindStr, data, err := classify(fc)
			if err != nil {
				outerErr = err
				return
			}
			ref, err := k.Naming.GenerateFace(body, featureId, fc, kindStr, data)
			if err != nil {
				outerErr = err
				return
			}
			refs = append(refs, ref)
		})
	})
	if err != nil {
		return nil, err
	}
	return refs, outerErr
}

// BooleanResult is a boolean operation's payload: the new body, whose
// evolutions are already folded into the naming strategy's evolution map.
// The engine's warnings travel in Result.Warnings.
type BooleanResult struct {
	Body topo.BodyId
}

// Boolean combines a and b per op, updating the naming strategy's
// evolution map from the engine's reported evolutions (spec.md 4.6, 4.8).
func (k *Kernel) Boolean(a, b topo.BodyId, op boolean.Op) Result[BooleanResult] {
	res, err := boolean.Combine(k.Model, a, b, op, k.Tol)
	if err != nil {
		switch {
		case errors.Is(err, boolean.ErrEmptyResult):
			return fail[BooleanResult](KindEmptyResult, err)
		case errors.Is(err, boolean.ErrNonPlanarFace):
			return fail[BooleanResult](KindNonPlanarFace, err)
		}
		return fail[BooleanResult](KindInvalidHandle, err)
	}
	k.Naming.ApplyEvolutions([2]topo.BodyId{a, b}, res.Evolutions, res.Body)

	kind := KindNone
	if len(res.Warnings) > 0 {
		kind = KindNonManifoldEdge
	}
	return Result[BooleanResult]{Success: true, Kind: kind, Warnings: res.Warnings, Value: BooleanResult{Body: res.Body}}
}

// Heal runs topology healing over body (spec.md 4.7).
func (k *Kernel) Heal(body topo.BodyId) Result[heal.Report] {
	report, err := heal.Heal(k.Model, body, k.Tol, 0)
	if err != nil {
		return fail[heal.Report](KindInvalidHandle, err)
	}
	if !report.Validation.Ok() {
		return Result[heal.Report]{Success: true, Kind: KindHealingIntroducedErrors, Value: report}
	}
	return ok(report, nil)
}

// Tessellate triangulates body's live faces into a mesh (spec.md 3.1, 6).
func (k *Kernel) Tessellate(body topo.BodyId) Result[tessellate.Mesh] {
	mesh, err := tessellate.Body(k.Model, body)
	if err != nil {
		if err == tessellate.ErrNonPlanarFace {
			return fail[tessellate.Mesh](KindNonPlanarFace, err)
		}
		return fail[tessellate.Mesh](KindInvalidHandle, err)
	}
	return ok(mesh, nil)
}

// Resolve looks up a persistent reference against the current model
// (spec.md 4.8).
func (k *Kernel) Resolve(ref naming.PersistentRef) Result[naming.ResolveResult] {
	res, err := k.Naming.Resolve(ref)
	if err != nil {
		return fail[naming.ResolveResult](KindInvalidHandle, err)
	}
	return ok(res, nil)
}
