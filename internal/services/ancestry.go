package services

import (
	"github.com/google/uuid"

	"github.com/rootline-app/rootline-backend/internal/types"
)

// BuildAncestryClosure materializes the transitive ancestor-descendant
// relation from spouse and child rows: one row per reachable
// (ancestor, descendant) pair, depth >= 1, shortest path when a person
// is reachable along several routes (blended families, remarriages).
// Every spouse of a family counts as a parent of its children; the
// biological/step nuance lives on FamilyChild.ChildType, not here.
// The visited gate also terminates on cyclic input.
func BuildAncestryClosure(treeID uuid.UUID, spouses []*types.FamilySpouse, children []*types.FamilyChild) []*types.PersonAncestry {
	familyParents := map[uuid.UUID][]uuid.UUID{}
	for _, sp := range spouses {
		familyParents[sp.FamilyID] = append(familyParents[sp.FamilyID], sp.PersonID)
	}

	parentChildren := map[uuid.UUID][]uuid.UUID{}
	for _, fc := range children {
		for _, parent := range familyParents[fc.FamilyID] {
			parentChildren[parent] = append(parentChildren[parent], fc.PersonID)
		}
	}

	type pair struct{ ancestor, descendant uuid.UUID }
	best := map[pair]int{}

	type frame struct {
		descendant uuid.UUID
		depth      int
	}
	var ordered []pair
	for parent, directChildren := range parentChildren {
		stack := make([]frame, 0, len(directChildren))
		for _, child := range directChildren {
			stack = append(stack, frame{descendant: child, depth: 1})
		}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			key := pair{ancestor: parent, descendant: f.descendant}
			if seen, ok := best[key]; ok && seen <= f.depth {
				continue
			}
			if _, ok := best[key]; !ok {
				ordered = append(ordered, key)
			}
			best[key] = f.depth

			for _, grandChild := range parentChildren[f.descendant] {
				stack = append(stack, frame{descendant: grandChild, depth: f.depth + 1})
			}
		}
	}

	rows := make([]*types.PersonAncestry, 0, len(best))
	for _, key := range ordered {
		rows = append(rows, &types.PersonAncestry{
			ID:           types.NewID(),
			TreeID:       treeID,
			AncestorID:   key.ancestor,
			DescendantID: key.descendant,
			Depth:        best[key],
		})
	}
	return rows
}
