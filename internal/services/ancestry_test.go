package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/rootline-app/rootline-backend/internal/types"
)

func spouse(familyID, personID uuid.UUID, role types.SpouseRole) *types.FamilySpouse {
	return &types.FamilySpouse{
		ID:       types.NewID(),
		FamilyID: familyID,
		PersonID: personID,
		Role:     role,
	}
}

func child(familyID, personID uuid.UUID) *types.FamilyChild {
	return &types.FamilyChild{
		ID:        types.NewID(),
		FamilyID:  familyID,
		PersonID:  personID,
		ChildType: types.ChildTypeBiological,
	}
}

func closureDepths(rows []*types.PersonAncestry) map[[2]uuid.UUID]int {
	out := map[[2]uuid.UUID]int{}
	for _, r := range rows {
		out[[2]uuid.UUID{r.AncestorID, r.DescendantID}] = r.Depth
	}
	return out
}

func TestBuildAncestryClosureSingleFamily(t *testing.T) {
	treeID := types.NewID()
	father := types.NewID()
	mother := types.NewID()
	kid := types.NewID()
	familyID := types.NewID()

	rows := BuildAncestryClosure(treeID,
		[]*types.FamilySpouse{
			spouse(familyID, father, types.SpouseRoleHusband),
			spouse(familyID, mother, types.SpouseRoleWife),
		},
		[]*types.FamilyChild{child(familyID, kid)},
	)

	if len(rows) != 2 {
		t.Fatalf("expected 2 closure rows, got %d", len(rows))
	}
	depths := closureDepths(rows)
	if depths[[2]uuid.UUID{father, kid}] != 1 {
		t.Errorf("father-child depth = %d, want 1", depths[[2]uuid.UUID{father, kid}])
	}
	if depths[[2]uuid.UUID{mother, kid}] != 1 {
		t.Errorf("mother-child depth = %d, want 1", depths[[2]uuid.UUID{mother, kid}])
	}
	for _, r := range rows {
		if r.TreeID != treeID {
			t.Errorf("row tree id = %v, want %v", r.TreeID, treeID)
		}
		if r.Depth < 1 {
			t.Errorf("row depth = %d, want >= 1", r.Depth)
		}
	}
}

func TestBuildAncestryClosureTransitive(t *testing.T) {
	treeID := types.NewID()
	grandparent := types.NewID()
	parent := types.NewID()
	grandchild := types.NewID()
	older := types.NewID()
	younger := types.NewID()

	rows := BuildAncestryClosure(treeID,
		[]*types.FamilySpouse{
			spouse(older, grandparent, types.SpouseRoleHusband),
			spouse(younger, parent, types.SpouseRoleHusband),
		},
		[]*types.FamilyChild{
			child(older, parent),
			child(younger, grandchild),
		},
	)

	depths := closureDepths(rows)
	if len(depths) != 3 {
		t.Fatalf("expected 3 pairs, got %d: %v", len(depths), depths)
	}
	if depths[[2]uuid.UUID{grandparent, parent}] != 1 {
		t.Errorf("grandparent-parent depth = %d", depths[[2]uuid.UUID{grandparent, parent}])
	}
	if depths[[2]uuid.UUID{parent, grandchild}] != 1 {
		t.Errorf("parent-grandchild depth = %d", depths[[2]uuid.UUID{parent, grandchild}])
	}
	if depths[[2]uuid.UUID{grandparent, grandchild}] != 2 {
		t.Errorf("grandparent-grandchild depth = %d, want 2", depths[[2]uuid.UUID{grandparent, grandchild}])
	}
}

// A person reachable along two routes keeps the shortest depth: here the
// ancestor is both parent (via remarriage) and grandparent of the same
// descendant.
func TestBuildAncestryClosureShortestPath(t *testing.T) {
	treeID := types.NewID()
	ancestor := types.NewID()
	middle := types.NewID()
	target := types.NewID()
	famA := types.NewID()
	famB := types.NewID()
	famC := types.NewID()

	rows := BuildAncestryClosure(treeID,
		[]*types.FamilySpouse{
			spouse(famA, ancestor, types.SpouseRoleHusband),
			spouse(famB, middle, types.SpouseRoleWife),
			spouse(famC, ancestor, types.SpouseRoleHusband),
		},
		[]*types.FamilyChild{
			child(famA, middle),
			child(famB, target),
			child(famC, target),
		},
	)

	depths := closureDepths(rows)
	if got := depths[[2]uuid.UUID{ancestor, target}]; got != 1 {
		t.Errorf("ancestor-target depth = %d, want 1 (shortest of 1 and 2)", got)
	}

	seen := map[[2]uuid.UUID]bool{}
	for _, r := range rows {
		key := [2]uuid.UUID{r.AncestorID, r.DescendantID}
		if seen[key] {
			t.Errorf("duplicate closure row for %v", key)
		}
		seen[key] = true
	}
}

func TestBuildAncestryClosureCycleTerminates(t *testing.T) {
	treeID := types.NewID()
	a := types.NewID()
	b := types.NewID()
	famAB := types.NewID()
	famBA := types.NewID()

	// a is parent of b and b is parent of a. Malformed input, but the
	// walk must still finish.
	rows := BuildAncestryClosure(treeID,
		[]*types.FamilySpouse{
			spouse(famAB, a, types.SpouseRoleHusband),
			spouse(famBA, b, types.SpouseRoleHusband),
		},
		[]*types.FamilyChild{
			child(famAB, b),
			child(famBA, a),
		},
	)

	depths := closureDepths(rows)
	if depths[[2]uuid.UUID{a, b}] != 1 || depths[[2]uuid.UUID{b, a}] != 1 {
		t.Errorf("cyclic input depths = %v, want both direct pairs at depth 1", depths)
	}
	for key, d := range depths {
		if key[0] == key[1] && d > 0 {
			// self pairs are tolerated from cyclic input as long as the
			// walk terminated; just make sure depth stayed bounded
			if d > 2 {
				t.Errorf("self pair %v depth = %d", key, d)
			}
		}
	}
}
