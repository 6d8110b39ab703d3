// Package naming implements persistent naming: generating a stable
// reference for each face/edge a feature produces, tracking how booleans
// reshape those subshapes, and resolving a reference back to a live
// subshape after rebuilds (spec.md 4.8).
package naming

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samwillis/solidtype-sub007/topo"
)

// ExpectedType is the kind of topology entity a PersistentRef points at.
type ExpectedType string

const (
	TypeFace   ExpectedType = "face"
	TypeEdge   ExpectedType = "edge"
	TypeVertex ExpectedType = "vertex"
)

// LocalSelector names how a subshape was produced, e.g. "extrude.topCap"
// with data carrying the generating profile loop id (spec.md 4.8).
type LocalSelector struct {
	Kind string         `json:"kind"`
	Data map[string]any `json:"data,omitempty"`
}

// Fingerprint is the geometric fallback used when topological lookup
// misses: a centroid/size/normal triple for faces, reduced to centroid
// and length for edges (spec.md 4.8).
type Fingerprint struct {
	Centroid [3]float64 `json:"centroid"`
	Size     float64    `json:"size"`
	Normal   *[3]float64 `json:"normal,omitempty"`
}

// Record is the versioned, serializable persistent-reference payload
// (spec.md 3.3).
type Record struct {
	V               int            `json:"v"`
	ExpectedType    ExpectedType   `json:"expectedType"`
	OriginFeatureId string         `json:"originFeatureId"`
	LocalSelector   LocalSelector  `json:"localSelector"`
	Fingerprint     *Fingerprint   `json:"fingerprint,omitempty"`
}

// PersistentRef is the wire-encoded form of a Record: the literal string
// "stref:v1:<base64url(canonical-JSON(record))>" (spec.md 3.3).
type PersistentRef string

const wirePrefix = "stref:v1:"

// Encode canonicalizes rec's JSON (object keys sorted at every depth) and
// wraps it as a PersistentRef.
func Encode(rec Record) (PersistentRef, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("naming: marshal record: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("naming: canonicalize record: %w", err)
	}
	canon, err := canonicalJSON(generic)
	if err != nil {
		return "", err
	}
	enc := base64.URLEncoding.EncodeToString([]byte(canon))
	return PersistentRef(wirePrefix + enc), nil
}

// Decode reverses Encode, validating the wire prefix and version.
func Decode(ref PersistentRef) (Record, error) {
	s := string(ref)
	if !strings.HasPrefix(s, wirePrefix) {
		return Record{}, fmt.Errorf("naming: not a stref:v1 reference: %q", s)
	}
	raw, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(s, wirePrefix))
	if err != nil {
		return Record{}, fmt.Errorf("naming: decode base64url: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("naming: unmarshal record: %w", err)
	}
	if rec.V != 1 {
		return Record{}, fmt.Errorf("naming: unsupported record version %d", rec.V)
	}
	return rec, nil
}

// canonicalJSON re-marshals v with every object's keys sorted
// lexicographically at every depth, preserving array order.
func canonicalJSON(v any) (string, error) {
	var b strings.Builder
	if err := writeCanonical(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeCanonical(b *strings.Builder, v any) error {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			b.Write(kb)
			b.WriteByte(':')
			if err := writeCanonical(b, t[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeCanonical(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		eb, err := json.Marshal(t)
		if err != nil {
			return err
		}
		b.Write(eb)
	}
	return nil
}

// SubshapeRef identifies a live subshape in a specific body: the Go-side
// analogue of the record's (originFeatureId, localSelector) pair before
// it is turned into a wire string.
type SubshapeRef struct {
	Body topo.BodyId
	Type ExpectedType
	Face topo.FaceId
	Edge topo.EdgeId
}
