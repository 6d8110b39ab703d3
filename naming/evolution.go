package naming

import (
	"github.com/samwillis/solidtype-sub007/boolean"
	"github.com/samwillis/solidtype-sub007/topo"
)

// ApplyEvolutions updates the reverse map after a boolean.Combine call:
// every reference that pointed at an operand face now resolves to that
// face's surviving new face(s), and references whose face was entirely
// deleted stop resolving topologically (spec.md 4.8, "Evolution
// tracking"). oldBodies maps boolean's 0/1 operand index to the actual
// body id the caller passed to boolean.Combine.
func (s *Strategy) ApplyEvolutions(oldBodies [2]topo.BodyId, evolutions []boolean.Evolution, newBody topo.BodyId) {
	for _, ev := range evolutions {
		oldSub := SubshapeRef{Body: oldBodies[ev.OldFace.Body], Type: TypeFace, Face: ev.OldFace.Face}
		refs := s.forward[oldSub]
		if len(refs) == 0 {
			continue
		}
		if ev.Kind == boolean.Deleted {
			for _, r := range refs {
				delete(s.reverse, r)
			}
			continue
		}
		newSub := SubshapeRef{Body: newBody, Type: TypeFace, Face: ev.NewFace}
		s.forward[newSub] = append(s.forward[newSub], refs...)
		for _, r := range refs {
			s.reverse[r] = newSub
		}
		for featureId, b := range s.featureBody {
			if b == oldBodies[ev.OldFace.Body] {
				s.featureBody[featureId] = newBody
			}
		}
	}
}
