package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

const minimalIndividual = `0 HEAD
1 GEDC
2 VERS 5.5.1
0 @I1@ INDI
1 NAME John /Doe/
1 SEX M
1 BIRT
2 DATE 15 JAN 1842
2 PLAC London, England
1 DEAT
2 DATE 3 MAR 1910
2 PLAC Paris, France
0 TRLR
`

const smallFamily = `0 HEAD
1 GEDC
2 VERS 5.5.1
0 @I1@ INDI
1 NAME Henry /Stone/
1 SEX M
0 @I2@ INDI
1 NAME Mary /Stone/
1 SEX F
0 @I3@ INDI
1 NAME Alice /Stone/
1 SEX F
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
0 TRLR
`

func TestImportMinimalIndividual(t *testing.T) {
	treeID := types.NewID()
	svc := NewGedcomImportService(testLogger())

	res, err := svc.Import(minimalIndividual, treeID)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	if len(res.Persons) != 1 {
		t.Fatalf("persons = %d, want 1", len(res.Persons))
	}
	person := res.Persons[0]
	if person.Sex != types.SexMale {
		t.Errorf("sex = %q, want male", person.Sex)
	}
	if person.TreeID != treeID {
		t.Errorf("tree id = %v, want %v", person.TreeID, treeID)
	}

	if len(res.PersonNames) != 1 {
		t.Fatalf("person names = %d, want 1", len(res.PersonNames))
	}
	name := res.PersonNames[0]
	if name.GivenNames != "John" || name.Surname != "Doe" {
		t.Errorf("name = %q/%q, want John/Doe", name.GivenNames, name.Surname)
	}
	if !name.IsPrimary {
		t.Error("first name should be primary")
	}
	if name.PersonID != person.ID {
		t.Error("name does not reference the person")
	}

	if len(res.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(res.Events))
	}
	byType := map[types.EventType]*types.Event{}
	for _, ev := range res.Events {
		byType[ev.EventType] = ev
	}
	birth := byType[types.EventTypeBirth]
	if birth == nil {
		t.Fatal("no birth event")
	}
	if birth.DateValue != "15 JAN 1842" {
		t.Errorf("birth date value = %q", birth.DateValue)
	}
	wantBirth := time.Date(1842, time.January, 15, 0, 0, 0, 0, time.UTC)
	if birth.DateSort == nil || !birth.DateSort.Equal(wantBirth) {
		t.Errorf("birth date sort = %v, want %v", birth.DateSort, wantBirth)
	}
	death := byType[types.EventTypeDeath]
	if death == nil {
		t.Fatal("no death event")
	}
	wantDeath := time.Date(1910, time.March, 3, 0, 0, 0, 0, time.UTC)
	if death.DateSort == nil || !death.DateSort.Equal(wantDeath) {
		t.Errorf("death date sort = %v, want %v", death.DateSort, wantDeath)
	}
	if birth.PersonID == nil || *birth.PersonID != person.ID {
		t.Error("birth event does not reference the person")
	}

	if len(res.Places) != 2 {
		t.Errorf("places = %d, want 2", len(res.Places))
	}
}

func TestImportFamilyAndClosure(t *testing.T) {
	treeID := types.NewID()
	svc := NewGedcomImportService(testLogger())

	res, err := svc.Import(smallFamily, treeID)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Persons) != 3 {
		t.Fatalf("persons = %d, want 3", len(res.Persons))
	}
	if len(res.Families) != 1 {
		t.Fatalf("families = %d, want 1", len(res.Families))
	}

	if len(res.FamilySpouses) != 2 {
		t.Fatalf("family spouses = %d, want 2", len(res.FamilySpouses))
	}
	roles := map[types.SpouseRole]int{}
	for _, sp := range res.FamilySpouses {
		roles[sp.Role]++
		if sp.FamilyID != res.Families[0].ID {
			t.Error("spouse not linked to the family")
		}
	}
	if roles[types.SpouseRoleHusband] != 1 || roles[types.SpouseRoleWife] != 1 {
		t.Errorf("spouse roles = %v, want one husband and one wife", roles)
	}

	if len(res.FamilyChildren) != 1 {
		t.Fatalf("family children = %d, want 1", len(res.FamilyChildren))
	}
	if res.FamilyChildren[0].SortOrder != 0 {
		t.Errorf("child sort order = %d, want 0", res.FamilyChildren[0].SortOrder)
	}

	if len(res.PersonAncestry) != 2 {
		t.Fatalf("ancestry rows = %d, want 2", len(res.PersonAncestry))
	}
	for _, row := range res.PersonAncestry {
		if row.Depth != 1 {
			t.Errorf("ancestry depth = %d, want 1", row.Depth)
		}
	}
}

func TestImportDeduplicatesPlaces(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME Ann /Hill/
1 BIRT
2 PLAC London, England
0 @I2@ INDI
1 NAME Robert /Hill/
0 @F1@ FAM
1 HUSB @I2@
1 WIFE @I1@
1 MARR
2 PLAC London, England
0 TRLR
`
	svc := NewGedcomImportService(testLogger())
	res, err := svc.Import(text, types.NewID())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(res.Places) != 1 {
		t.Fatalf("places = %d, want 1", len(res.Places))
	}
	placeID := res.Places[0].ID
	for _, ev := range res.Events {
		if ev.PlaceID == nil || *ev.PlaceID != placeID {
			t.Errorf("event %s does not reference the deduplicated place", ev.EventType)
		}
	}
}

func TestImportCitationConfidence(t *testing.T) {
	text := `0 HEAD
0 @S1@ SOUR
1 TITL Parish register
0 @I1@ INDI
1 NAME Ed /Kemp/
1 BIRT
2 DATE 1 JAN 1900
2 SOUR @S1@
3 PAGE p. 42
3 QUAY 3
0 TRLR
`
	svc := NewGedcomImportService(testLogger())
	res, err := svc.Import(text, types.NewID())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(res.Citations) != 1 {
		t.Fatalf("citations = %d, want 1", len(res.Citations))
	}
	cit := res.Citations[0]
	if cit.Confidence != types.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", cit.Confidence)
	}
	if cit.Page != "p. 42" {
		t.Errorf("page = %q", cit.Page)
	}
	if cit.SourceID != res.Sources[0].ID {
		t.Error("citation does not reference the source")
	}
	if cit.EventID == nil {
		t.Error("citation should hang off the birth event")
	}
}

func TestImportWarnsAndContinues(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME Eve /Moss/
1 BIRT
2 SOUR @S9@
0 @F1@ FAM
1 HUSB @I404@
1 WIFE @I1@
0 TRLR
`
	svc := NewGedcomImportService(testLogger())
	res, err := svc.Import(text, types.NewID())
	if err != nil {
		t.Fatalf("Import should not fail on semantic problems: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", res.Warnings)
	}
	joined := strings.Join(res.Warnings, "; ")
	if !strings.Contains(joined, "unknown source") {
		t.Errorf("missing citation warning in %q", joined)
	}
	if !strings.Contains(joined, "husband xref") {
		t.Errorf("missing husband warning in %q", joined)
	}
	// The rest of the family still imports.
	if len(res.FamilySpouses) != 1 {
		t.Errorf("family spouses = %d, want 1 (the wife)", len(res.FamilySpouses))
	}
	if len(res.Citations) != 0 {
		t.Errorf("citations = %d, want 0", len(res.Citations))
	}
}

func TestImportMediaResolution(t *testing.T) {
	text := `0 HEAD
0 @M1@ OBJE
1 FILE /photos/portrait.jpg
2 FORM image/jpeg
1 TITL Portrait
0 @I1@ INDI
1 NAME Ada /Pryce/
1 OBJE @M1@
1 OBJE
2 FILE /photos/wedding.png
3 FORM image/png
1 OBJE
2 TITL caption without a file
1 OBJE @M404@
0 TRLR
`
	importSvc := NewGedcomImportService(testLogger())
	res, err := importSvc.Import(text, types.NewID())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	// Record + inline; the file-less OBJE and the dangling pointer add
	// nothing.
	if len(res.Media) != 2 {
		t.Fatalf("media = %d, want 2", len(res.Media))
	}
	byPath := map[string]*types.Media{}
	for _, m := range res.Media {
		byPath[m.FilePath] = m
	}
	portrait := byPath["/photos/portrait.jpg"]
	if portrait == nil {
		t.Fatal("record media missing")
	}
	if portrait.MimeType != "image/jpeg" || portrait.FileName != "portrait.jpg" || portrait.Title != "Portrait" {
		t.Errorf("record media = %q/%q/%q", portrait.MimeType, portrait.FileName, portrait.Title)
	}
	inline := byPath["/photos/wedding.png"]
	if inline == nil {
		t.Fatal("inline media missing")
	}
	if inline.MimeType != "image/png" || inline.FileName != "wedding.png" {
		t.Errorf("inline media = %q/%q", inline.MimeType, inline.FileName)
	}

	if len(res.MediaLinks) != 2 {
		t.Fatalf("media links = %d, want 2", len(res.MediaLinks))
	}
	personID := res.Persons[0].ID
	for _, link := range res.MediaLinks {
		if link.PersonID == nil || *link.PersonID != personID {
			t.Errorf("link %v not attached to the person", link.ID)
		}
	}
	if res.MediaLinks[0].MediaID != portrait.ID || res.MediaLinks[0].SortOrder != 0 {
		t.Errorf("first link = media %v order %d, want the pointer target at 0",
			res.MediaLinks[0].MediaID, res.MediaLinks[0].SortOrder)
	}
	if res.MediaLinks[1].MediaID != inline.ID || res.MediaLinks[1].SortOrder != 1 {
		t.Errorf("second link = media %v order %d, want the inline file at 1",
			res.MediaLinks[1].MediaID, res.MediaLinks[1].SortOrder)
	}

	// Only the dangling pointer warns; the file-less OBJE drops silently.
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "media xref @M404@ not found") {
		t.Errorf("warnings = %v, want one dangling-pointer warning", res.Warnings)
	}

	// Both media survive a full round trip.
	exported, err := NewGedcomExportService(testLogger()).Export(&EntitySet{
		Persons:     res.Persons,
		PersonNames: res.PersonNames,
		Media:       res.Media,
		MediaLinks:  res.MediaLinks,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	second, err := importSvc.Import(exported.Gedcom, types.NewID())
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if len(second.Media) != 2 || len(second.MediaLinks) != 2 {
		t.Errorf("round trip media/links = %d/%d, want 2/2", len(second.Media), len(second.MediaLinks))
	}
}

func TestImportKeepsFirstNoteOnly(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME Ivy /Nash/
1 NOTE first remark
1 NOTE second remark
0 TRLR
`
	svc := NewGedcomImportService(testLogger())
	res, err := svc.Import(text, types.NewID())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Notes) != 1 {
		t.Fatalf("notes = %d, want 1 (first only)", len(res.Notes))
	}
	note := res.Notes[0]
	if note.Text != "first remark" {
		t.Errorf("note text = %q, want the first note", note.Text)
	}
	if note.PersonID == nil || *note.PersonID != res.Persons[0].ID {
		t.Error("note not attached to the person")
	}
}

func TestImportPedigreeRefinement(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME Parent /One/
0 @I2@ INDI
1 NAME Kid /One/
1 FAMC @F1@
2 PEDI adopted
0 @F1@ FAM
1 HUSB @I1@
1 CHIL @I2@
0 TRLR
`
	svc := NewGedcomImportService(testLogger())
	res, err := svc.Import(text, types.NewID())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(res.FamilyChildren) != 1 {
		t.Fatalf("family children = %d, want 1", len(res.FamilyChildren))
	}
	if got := res.FamilyChildren[0].ChildType; got != types.ChildTypeAdopted {
		t.Errorf("child type = %q, want adopted", got)
	}
}

func TestImportIDsAreUniqueAndResolvable(t *testing.T) {
	svc := NewGedcomImportService(testLogger())
	res, err := svc.Import(smallFamily, types.NewID())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	ids := map[uuid.UUID]bool{}
	record := func(id uuid.UUID) {
		if ids[id] {
			t.Errorf("duplicate id %v", id)
		}
		ids[id] = true
	}
	persons := map[uuid.UUID]bool{}
	for _, p := range res.Persons {
		record(p.ID)
		persons[p.ID] = true
	}
	for _, f := range res.Families {
		record(f.ID)
	}
	for _, n := range res.PersonNames {
		record(n.ID)
		if !persons[n.PersonID] {
			t.Errorf("person name %v references unknown person %v", n.ID, n.PersonID)
		}
	}
	for _, sp := range res.FamilySpouses {
		record(sp.ID)
		if !persons[sp.PersonID] {
			t.Errorf("spouse row references unknown person %v", sp.PersonID)
		}
	}
	for _, fc := range res.FamilyChildren {
		record(fc.ID)
		if !persons[fc.PersonID] {
			t.Errorf("child row references unknown person %v", fc.PersonID)
		}
	}
	for _, row := range res.PersonAncestry {
		record(row.ID)
		if !persons[row.AncestorID] || !persons[row.DescendantID] {
			t.Errorf("ancestry row references unknown person")
		}
	}
}

func TestImportFailsOnMalformedInput(t *testing.T) {
	svc := NewGedcomImportService(testLogger())
	if _, err := svc.Import("0 HEAD\n3 GEDC\n", types.NewID()); err == nil {
		t.Error("expected error for level jump")
	}
}
