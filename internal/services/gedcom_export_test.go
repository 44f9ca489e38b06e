package services

import (
	"strings"
	"testing"

	"github.com/rootline-app/rootline-backend/internal/types"
)

func TestExportEmitsHeaderAndTrailer(t *testing.T) {
	svc := NewGedcomExportService(testLogger())
	res, err := svc.Export(&EntitySet{})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	for _, want := range []string{
		"0 HEAD\n",
		"2 VERS 5.5.1\n",
		"2 FORM LINEAGE-LINKED\n",
		"1 CHAR UTF-8\n",
		"0 TRLR\n",
	} {
		if !strings.Contains(res.Gedcom, want) {
			t.Errorf("missing %q in export:\n%s", want, res.Gedcom)
		}
	}
}

func TestExportIndividual(t *testing.T) {
	treeID := types.NewID()
	person := &types.Person{ID: types.NewID(), TreeID: treeID, Sex: types.SexFemale}
	name := &types.PersonName{
		ID:         types.NewID(),
		PersonID:   person.ID,
		NameType:   types.NameTypeMarried,
		GivenNames: "Mary",
		Surname:    "Stone",
		IsPrimary:  true,
	}
	place := &types.Place{ID: types.NewID(), TreeID: treeID, Name: "London, England"}
	lat, lon := 51.5, -0.12
	place.Latitude, place.Longitude = &lat, &lon
	birth := &types.Event{
		ID:        types.NewID(),
		TreeID:    treeID,
		EventType: types.EventTypeBirth,
		DateValue: "ABT 1842",
		PersonID:  &person.ID,
		PlaceID:   &place.ID,
	}

	svc := NewGedcomExportService(testLogger())
	res, err := svc.Export(&EntitySet{
		Persons:     []*types.Person{person},
		PersonNames: []*types.PersonName{name},
		Places:      []*types.Place{place},
		Events:      []*types.Event{birth},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	for _, want := range []string{
		"0 @I1@ INDI\n",
		"1 NAME Mary /Stone/\n",
		"2 TYPE married\n",
		"1 SEX F\n",
		"1 BIRT\n",
		"2 DATE ABT 1842\n",
		"2 PLAC London, England\n",
		"4 LATI N51.5\n",
		"4 LONG W0.12\n",
	} {
		if !strings.Contains(res.Gedcom, want) {
			t.Errorf("missing %q in export:\n%s", want, res.Gedcom)
		}
	}
	if sex, name := strings.Index(res.Gedcom, "1 SEX F"), strings.Index(res.Gedcom, "1 NAME "); sex > name {
		t.Errorf("SEX emitted after NAME (sex at %d, name at %d):\n%s", sex, name, res.Gedcom)
	}
}

func TestExportPartnerSpouseDropped(t *testing.T) {
	treeID := types.NewID()
	a := &types.Person{ID: types.NewID(), TreeID: treeID, Sex: types.SexMale}
	b := &types.Person{ID: types.NewID(), TreeID: treeID, Sex: types.SexMale}
	family := &types.Family{ID: types.NewID(), TreeID: treeID}

	svc := NewGedcomExportService(testLogger())
	res, err := svc.Export(&EntitySet{
		Persons:  []*types.Person{a, b},
		Families: []*types.Family{family},
		FamilySpouses: []*types.FamilySpouse{
			{ID: types.NewID(), FamilyID: family.ID, PersonID: a.ID, Role: types.SpouseRoleHusband},
			{ID: types.NewID(), FamilyID: family.ID, PersonID: b.ID, Role: types.SpouseRolePartner},
		},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "no GEDCOM 5.5.1 representation") {
		t.Errorf("warnings = %v, want one partner warning", res.Warnings)
	}
	if !strings.Contains(res.Gedcom, "1 HUSB @I1@\n") {
		t.Errorf("husband line missing:\n%s", res.Gedcom)
	}
	if strings.Contains(res.Gedcom, "@I2@\n") {
		t.Errorf("partner leaked into family record:\n%s", res.Gedcom)
	}
}

func TestExportUnresolvedCitationWarns(t *testing.T) {
	treeID := types.NewID()
	person := &types.Person{ID: types.NewID(), TreeID: treeID, Sex: types.SexUnknown}
	citation := &types.Citation{
		ID:         types.NewID(),
		SourceID:   types.NewID(),
		PersonID:   &person.ID,
		Confidence: types.ConfidenceMedium,
	}

	svc := NewGedcomExportService(testLogger())
	res, err := svc.Export(&EntitySet{
		Persons:   []*types.Person{person},
		Citations: []*types.Citation{citation},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "not present in export") {
		t.Errorf("warnings = %v, want one unresolved-source warning", res.Warnings)
	}
	if strings.Contains(res.Gedcom, "SOUR @") {
		t.Errorf("dropped citation still emitted:\n%s", res.Gedcom)
	}
}

func TestExportChildOrderFollowsSortOrder(t *testing.T) {
	treeID := types.NewID()
	first := &types.Person{ID: types.NewID(), TreeID: treeID}
	second := &types.Person{ID: types.NewID(), TreeID: treeID}
	family := &types.Family{ID: types.NewID(), TreeID: treeID}

	svc := NewGedcomExportService(testLogger())
	res, err := svc.Export(&EntitySet{
		Persons:  []*types.Person{first, second},
		Families: []*types.Family{family},
		FamilyChildren: []*types.FamilyChild{
			{ID: types.NewID(), FamilyID: family.ID, PersonID: second.ID, SortOrder: 1},
			{ID: types.NewID(), FamilyID: family.ID, PersonID: first.ID, SortOrder: 0},
		},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	older := strings.Index(res.Gedcom, "1 CHIL @I1@")
	younger := strings.Index(res.Gedcom, "1 CHIL @I2@")
	if older < 0 || younger < 0 || older > younger {
		t.Errorf("children out of order (I1 at %d, I2 at %d):\n%s", older, younger, res.Gedcom)
	}
}

// Import, export, re-import. Identifiers are reminted on each pass, so
// only structural counts are compared.
func TestRoundTripPreservesCounts(t *testing.T) {
	treeID := types.NewID()
	importSvc := NewGedcomImportService(testLogger())
	exportSvc := NewGedcomExportService(testLogger())

	first, err := importSvc.Import(smallFamily, treeID)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}

	exported, err := exportSvc.Export(&EntitySet{
		Persons:        first.Persons,
		PersonNames:    first.PersonNames,
		Families:       first.Families,
		FamilySpouses:  first.FamilySpouses,
		FamilyChildren: first.FamilyChildren,
		Events:         first.Events,
		Places:         first.Places,
		Sources:        first.Sources,
		Citations:      first.Citations,
		Media:          first.Media,
		MediaLinks:     first.MediaLinks,
		Notes:          first.Notes,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	second, err := importSvc.Import(exported.Gedcom, types.NewID())
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}

	if len(second.Persons) != len(first.Persons) {
		t.Errorf("persons: %d != %d", len(second.Persons), len(first.Persons))
	}
	if len(second.Families) != len(first.Families) {
		t.Errorf("families: %d != %d", len(second.Families), len(first.Families))
	}
	if len(second.FamilySpouses) != len(first.FamilySpouses) {
		t.Errorf("spouses: %d != %d", len(second.FamilySpouses), len(first.FamilySpouses))
	}
	if len(second.FamilyChildren) != len(first.FamilyChildren) {
		t.Errorf("children: %d != %d", len(second.FamilyChildren), len(first.FamilyChildren))
	}
	if len(second.PersonAncestry) != len(first.PersonAncestry) {
		t.Errorf("ancestry rows: %d != %d", len(second.PersonAncestry), len(first.PersonAncestry))
	}
}
