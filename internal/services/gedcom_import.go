package services

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rootline-app/rootline-backend/internal/gedcom"
	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
)

// ImportResult is the full entity set produced by one GEDCOM import.
// Every foreign key resolves within the result (or is the tree id), so
// persisting slices in the order places, sources, media, persons,
// person_names, families, family_spouses, family_children, events,
// citations, media_links, notes, person_ancestry never violates a
// constraint.
type ImportResult struct {
	Persons        []*types.Person
	PersonNames    []*types.PersonName
	Families       []*types.Family
	FamilySpouses  []*types.FamilySpouse
	FamilyChildren []*types.FamilyChild
	Events         []*types.Event
	Places         []*types.Place
	Sources        []*types.Source
	Citations      []*types.Citation
	Media          []*types.Media
	MediaLinks     []*types.MediaLink
	Notes          []*types.Note
	PersonAncestry []*types.PersonAncestry
	Warnings       []string
}

type GedcomImportService interface {
	Import(gedcomText string, treeID uuid.UUID) (*ImportResult, error)
}

type gedcomImportService struct {
	log *logger.Logger
}

func NewGedcomImportService(log *logger.Logger) GedcomImportService {
	return &gedcomImportService{log: log.With("service", "GedcomImportService")}
}

var individualEventTags = map[string]types.EventType{
	"BIRT": types.EventTypeBirth,
	"BAPM": types.EventTypeBaptism,
	"CHR":  types.EventTypeChristening,
	"DEAT": types.EventTypeDeath,
	"BURI": types.EventTypeBurial,
	"CREM": types.EventTypeCremation,
	"ADOP": types.EventTypeAdoption,
	"IMMI": types.EventTypeImmigration,
	"EMIG": types.EventTypeEmigration,
	"NATU": types.EventTypeNaturalization,
	"CENS": types.EventTypeCensus,
	"GRAD": types.EventTypeGraduation,
	"RETI": types.EventTypeRetirement,
	"WILL": types.EventTypeWill,
	"PROB": types.EventTypeProbate,
	"RESI": types.EventTypeResidence,
	"OCCU": types.EventTypeOccupation,
	"EVEN": types.EventTypeOther,
}

var familyEventTags = map[string]types.EventType{
	"MARR": types.EventTypeMarriage,
	"DIV":  types.EventTypeDivorce,
	"ENGA": types.EventTypeEngagement,
	"MARB": types.EventTypeMarriageBanns,
	"ANUL": types.EventTypeAnnulment,
	"EVEN": types.EventTypeOther,
}

var nameTypeTags = map[string]types.NameType{
	"BIRT":      types.NameTypeBirth,
	"BIRTH":     types.NameTypeBirth,
	"MARR":      types.NameTypeMarried,
	"MARRIED":   types.NameTypeMarried,
	"MAIDEN":    types.NameTypeMaiden,
	"RELIGIOUS": types.NameTypeReligious,
	"AKA":       types.NameTypeAlsoKnownAs,
}

var pedigreeChildTypes = map[string]types.ChildType{
	"birth":   types.ChildTypeBiological,
	"adopted": types.ChildTypeAdopted,
	"foster":  types.ChildTypeFoster,
	"sealing": types.ChildTypeUnknown,
}

var quayConfidence = map[string]types.Confidence{
	"0": types.ConfidenceVeryLow,
	"1": types.ConfidenceLow,
	"2": types.ConfidenceMedium,
	"3": types.ConfidenceHigh,
}

// Import runs the two-pass translation from GEDCOM text to the entity
// model. Pass 1 allocates an id for every xref-carrying record; pass 2
// walks the records in forward-reference-safe order (sources, media,
// individuals, families) and translates xrefs through the pass-1 maps.
// Only a tokenizer failure is an error; every semantic problem becomes
// a warning and the import continues.
func (s *gedcomImportService) Import(gedcomText string, treeID uuid.UUID) (*ImportResult, error) {
	doc, err := gedcom.Parse(gedcomText)
	if err != nil {
		return nil, fmt.Errorf("parse gedcom: %w", err)
	}

	imp := &gedcomImporter{
		treeID:      treeID,
		now:         time.Now().UTC(),
		res:         &ImportResult{},
		personXrefs: map[string]uuid.UUID{},
		familyXrefs: map[string]uuid.UUID{},
		sourceXrefs: map[string]uuid.UUID{},
		mediaXrefs:  map[string]uuid.UUID{},
		placeIDs:    map[string]uuid.UUID{},
		places:      map[uuid.UUID]*types.Place{},
	}

	imp.allocateXrefs(doc)
	for _, rec := range doc.Records {
		if rec.Tag == "SOUR" {
			imp.importSource(rec)
		}
	}
	for _, rec := range doc.Records {
		if rec.Tag == "OBJE" {
			imp.importMediaRecord(rec)
		}
	}
	for _, rec := range doc.Records {
		if rec.Tag == "INDI" {
			imp.importIndividual(rec)
		}
	}
	for _, rec := range doc.Records {
		if rec.Tag == "FAM" {
			imp.importFamily(rec)
		}
	}
	imp.refinePedigrees(doc)

	imp.res.PersonAncestry = BuildAncestryClosure(treeID, imp.res.FamilySpouses, imp.res.FamilyChildren)

	s.log.Info("GEDCOM import finished",
		"persons", len(imp.res.Persons),
		"families", len(imp.res.Families),
		"events", len(imp.res.Events),
		"warnings", len(imp.res.Warnings))
	return imp.res, nil
}

// gedcomImporter is the per-import scratch state; it never outlives a
// single Import call.
type gedcomImporter struct {
	treeID uuid.UUID
	now    time.Time
	res    *ImportResult

	personXrefs map[string]uuid.UUID
	familyXrefs map[string]uuid.UUID
	sourceXrefs map[string]uuid.UUID
	mediaXrefs  map[string]uuid.UUID

	placeIDs map[string]uuid.UUID
	places   map[uuid.UUID]*types.Place
}

func (imp *gedcomImporter) warnf(format string, args ...interface{}) {
	imp.res.Warnings = append(imp.res.Warnings, fmt.Sprintf(format, args...))
}

// allocateXrefs is pass 1: mint an id per identified top-level record
// so pass 2 can resolve references in any direction.
func (imp *gedcomImporter) allocateXrefs(doc *gedcom.Document) {
	for _, rec := range doc.Records {
		var table map[string]uuid.UUID
		switch rec.Tag {
		case "INDI":
			table = imp.personXrefs
		case "FAM":
			table = imp.familyXrefs
		case "SOUR":
			table = imp.sourceXrefs
		case "OBJE":
			table = imp.mediaXrefs
		default:
			continue
		}
		if rec.Xref == "" {
			imp.warnf("skipping %s record without xref", rec.Tag)
			continue
		}
		table[rec.Xref] = types.NewID()
	}
}

func (imp *gedcomImporter) importSource(rec *gedcom.Node) {
	id, ok := imp.sourceXrefs[rec.Xref]
	if !ok {
		return
	}
	src := &types.Source{
		ID:           id,
		TreeID:       imp.treeID,
		Title:        rec.ValueOf("TITL"),
		Author:       rec.ValueOf("AUTH"),
		Publisher:    rec.ValueOf("PUBL"),
		Abbreviation: rec.ValueOf("ABBR"),
		CreatedAt:    imp.now,
		UpdatedAt:    imp.now,
	}
	imp.res.Sources = append(imp.res.Sources, src)

	for _, n := range rec.Children {
		if n.Tag == "NOTE" {
			imp.addNote(n.Value, noteOwner{sourceID: &id})
		}
	}
}

func (imp *gedcomImporter) importMediaRecord(rec *gedcom.Node) {
	id, ok := imp.mediaXrefs[rec.Xref]
	if !ok {
		return
	}
	media := imp.newMedia(id, rec)
	imp.res.Media = append(imp.res.Media, media)
}

// newMedia maps an OBJE subtree (top-level record or inline) to a Media
// entity. File size is unknown from GEDCOM and stays zero.
func (imp *gedcomImporter) newMedia(id uuid.UUID, node *gedcom.Node) *types.Media {
	filePath := node.ValueOf("FILE")
	mimeType := "application/octet-stream"
	if fileNode := node.First("FILE"); fileNode != nil {
		if form := fileNode.ValueOf("FORM"); form != "" {
			mimeType = form
		}
	}
	fileName := ""
	if filePath != "" {
		fileName = path.Base(filePath)
	}
	return &types.Media{
		ID:        id,
		TreeID:    imp.treeID,
		FileName:  fileName,
		MimeType:  mimeType,
		FilePath:  filePath,
		FileSize:  0,
		Title:     node.ValueOf("TITL"),
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	}
}

func (imp *gedcomImporter) importIndividual(rec *gedcom.Node) {
	id, ok := imp.personXrefs[rec.Xref]
	if !ok {
		return
	}
	person := &types.Person{
		ID:        id,
		TreeID:    imp.treeID,
		Sex:       mapSex(rec.ValueOf("SEX")),
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	}
	imp.res.Persons = append(imp.res.Persons, person)

	if nameNode := rec.First("NAME"); nameNode != nil {
		imp.importPersonName(nameNode, id)
	}

	noteSeen := false
	linkOrder := 0
	for _, n := range rec.Children {
		if eventType, ok := individualEventTags[n.Tag]; ok {
			imp.importEvent(n, eventType, &id, nil)
			continue
		}
		switch n.Tag {
		case "SOUR":
			imp.importCitation(n, citationOwner{personID: &id})
		case "NOTE":
			// 5.5.1 allows a single personal note; extras are dropped.
			if !noteSeen {
				imp.addNote(n.Value, noteOwner{personID: &id})
			}
			noteSeen = true
		case "OBJE":
			if imp.importMediaLink(n, mediaOwner{personID: &id}, linkOrder) {
				linkOrder++
			}
		}
	}
}

func (imp *gedcomImporter) importPersonName(node *gedcom.Node, personID uuid.UUID) {
	given, surname := gedcom.SplitPersonalName(node.Value)
	// Structured subtags win over the slash-delimited line value.
	if v := node.ValueOf("GIVN"); v != "" {
		given = v
	}
	if v := node.ValueOf("SURN"); v != "" {
		surname = v
	}

	nameType := types.NameTypeBirth
	if v := strings.ToUpper(strings.TrimSpace(node.ValueOf("TYPE"))); v != "" {
		if mapped, ok := nameTypeTags[v]; ok {
			nameType = mapped
		} else {
			nameType = types.NameTypeOther
		}
	}

	imp.res.PersonNames = append(imp.res.PersonNames, &types.PersonName{
		ID:         types.NewID(),
		PersonID:   personID,
		NameType:   nameType,
		GivenNames: given,
		Surname:    surname,
		Prefix:     node.ValueOf("NPFX"),
		Suffix:     node.ValueOf("NSFX"),
		Nickname:   node.ValueOf("NICK"),
		IsPrimary:  true,
		CreatedAt:  imp.now,
		UpdatedAt:  imp.now,
	})
}

func (imp *gedcomImporter) importFamily(rec *gedcom.Node) {
	id, ok := imp.familyXrefs[rec.Xref]
	if !ok {
		return
	}
	family := &types.Family{
		ID:        id,
		TreeID:    imp.treeID,
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	}
	imp.res.Families = append(imp.res.Families, family)

	childIndex := 0
	noteSeen := false
	linkOrder := 0
	for _, n := range rec.Children {
		if eventType, ok := familyEventTags[n.Tag]; ok {
			imp.importEvent(n, eventType, nil, &id)
			continue
		}
		switch n.Tag {
		case "HUSB":
			if personID, ok := imp.resolvePerson(n.Value, "husband"); ok {
				imp.addSpouse(id, personID, types.SpouseRoleHusband, 0)
			}
		case "WIFE":
			if personID, ok := imp.resolvePerson(n.Value, "wife"); ok {
				imp.addSpouse(id, personID, types.SpouseRoleWife, 1)
			}
		case "CHIL":
			if personID, ok := imp.resolvePerson(n.Value, "child"); ok {
				imp.res.FamilyChildren = append(imp.res.FamilyChildren, &types.FamilyChild{
					ID:        types.NewID(),
					FamilyID:  id,
					PersonID:  personID,
					ChildType: types.ChildTypeBiological,
					SortOrder: childIndex,
					CreatedAt: imp.now,
					UpdatedAt: imp.now,
				})
				childIndex++
			}
		case "SOUR":
			imp.importCitation(n, citationOwner{familyID: &id})
		case "NOTE":
			if !noteSeen {
				imp.addNote(n.Value, noteOwner{familyID: &id})
			}
			noteSeen = true
		case "OBJE":
			if imp.importMediaLink(n, mediaOwner{familyID: &id}, linkOrder) {
				linkOrder++
			}
		}
	}
}

func (imp *gedcomImporter) resolvePerson(pointer, role string) (uuid.UUID, bool) {
	id, ok := imp.personXrefs[gedcom.TrimPointer(pointer)]
	if !ok {
		imp.warnf("%s xref %s not found", role, pointer)
		return uuid.Nil, false
	}
	return id, true
}

func (imp *gedcomImporter) addSpouse(familyID, personID uuid.UUID, role types.SpouseRole, sortOrder int) {
	imp.res.FamilySpouses = append(imp.res.FamilySpouses, &types.FamilySpouse{
		ID:        types.NewID(),
		FamilyID:  familyID,
		PersonID:  personID,
		Role:      role,
		SortOrder: sortOrder,
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	})
}

func (imp *gedcomImporter) importEvent(node *gedcom.Node, eventType types.EventType, personID, familyID *uuid.UUID) {
	id := types.NewID()
	event := &types.Event{
		ID:          id,
		TreeID:      imp.treeID,
		EventType:   eventType,
		DateValue:   node.ValueOf("DATE"),
		PersonID:    personID,
		FamilyID:    familyID,
		Description: node.ValueOf("CAUS"),
		CreatedAt:   imp.now,
		UpdatedAt:   imp.now,
	}
	if event.DateValue != "" {
		event.DateSort = ParseGedcomDate(event.DateValue)
	}
	if placeNode := node.First("PLAC"); placeNode != nil {
		if placeID, ok := imp.resolvePlace(placeNode); ok {
			event.PlaceID = &placeID
		}
	}
	imp.res.Events = append(imp.res.Events, event)

	noteSeen := false
	linkOrder := 0
	for _, n := range node.Children {
		switch n.Tag {
		case "SOUR":
			imp.importCitation(n, citationOwner{eventID: &id})
		case "NOTE":
			if !noteSeen {
				imp.addNote(n.Value, noteOwner{eventID: &id})
			}
			noteSeen = true
		case "OBJE":
			if imp.importMediaLink(n, mediaOwner{eventID: &id}, linkOrder) {
				linkOrder++
			}
		}
	}
}

// resolvePlace deduplicates places by trimmed name within the import.
// MAP coordinates are written on every occurrence, so the last mention
// carrying a MAP wins and a later bare mention never clears them.
func (imp *gedcomImporter) resolvePlace(node *gedcom.Node) (uuid.UUID, bool) {
	name := strings.TrimSpace(node.Value)
	if name == "" {
		return uuid.Nil, false
	}
	id, ok := imp.placeIDs[name]
	if !ok {
		id = types.NewID()
		place := &types.Place{
			ID:        id,
			TreeID:    imp.treeID,
			Name:      name,
			CreatedAt: imp.now,
			UpdatedAt: imp.now,
		}
		imp.placeIDs[name] = id
		imp.places[id] = place
		imp.res.Places = append(imp.res.Places, place)
	}
	if mapNode := node.First("MAP"); mapNode != nil {
		lat, okLat := ParseGedcomCoordinate(mapNode.ValueOf("LATI"))
		lon, okLon := ParseGedcomCoordinate(mapNode.ValueOf("LONG"))
		if okLat && okLon {
			place := imp.places[id]
			place.Latitude = &lat
			place.Longitude = &lon
		}
	}
	return id, true
}

type citationOwner struct {
	personID *uuid.UUID
	eventID  *uuid.UUID
	familyID *uuid.UUID
}

func (imp *gedcomImporter) importCitation(node *gedcom.Node, owner citationOwner) {
	sourceID, ok := imp.sourceXrefs[gedcom.TrimPointer(node.Value)]
	if !ok {
		imp.warnf("citation references unknown source %s", node.Value)
		return
	}
	confidence := types.ConfidenceMedium
	if quay := strings.TrimSpace(node.ValueOf("QUAY")); quay != "" {
		if mapped, ok := quayConfidence[quay]; ok {
			confidence = mapped
		}
	}
	text := node.ValueOf("TEXT")
	if text == "" {
		if data := node.First("DATA"); data != nil {
			text = data.ValueOf("TEXT")
		}
	}
	imp.res.Citations = append(imp.res.Citations, &types.Citation{
		ID:         types.NewID(),
		SourceID:   sourceID,
		PersonID:   owner.personID,
		EventID:    owner.eventID,
		FamilyID:   owner.familyID,
		Page:       node.ValueOf("PAGE"),
		Confidence: confidence,
		Text:       text,
		CreatedAt:  imp.now,
		UpdatedAt:  imp.now,
	})
}

type mediaOwner struct {
	personID *uuid.UUID
	eventID  *uuid.UUID
	familyID *uuid.UUID
}

// importMediaLink handles an OBJE attached to an individual, family or
// event: either a pointer to a top-level media record or an inline
// FILE/FORM pair. An OBJE with neither is silently dropped. Reports
// whether a link was emitted.
func (imp *gedcomImporter) importMediaLink(node *gedcom.Node, owner mediaOwner, sortOrder int) bool {
	var mediaID uuid.UUID
	switch {
	case gedcom.IsPointer(node.Value):
		id, ok := imp.mediaXrefs[gedcom.TrimPointer(node.Value)]
		if !ok {
			imp.warnf("media xref %s not found", node.Value)
			return false
		}
		mediaID = id
	case node.ValueOf("FILE") != "":
		mediaID = types.NewID()
		imp.res.Media = append(imp.res.Media, imp.newMedia(mediaID, node))
	default:
		return false
	}

	imp.res.MediaLinks = append(imp.res.MediaLinks, &types.MediaLink{
		ID:        types.NewID(),
		MediaID:   mediaID,
		PersonID:  owner.personID,
		EventID:   owner.eventID,
		FamilyID:  owner.familyID,
		SortOrder: sortOrder,
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	})
	return true
}

type noteOwner struct {
	personID *uuid.UUID
	eventID  *uuid.UUID
	familyID *uuid.UUID
	sourceID *uuid.UUID
}

func (imp *gedcomImporter) addNote(text string, owner noteOwner) {
	if strings.TrimSpace(text) == "" {
		return
	}
	imp.res.Notes = append(imp.res.Notes, &types.Note{
		ID:        types.NewID(),
		TreeID:    imp.treeID,
		Text:      text,
		PersonID:  owner.personID,
		EventID:   owner.eventID,
		FamilyID:  owner.familyID,
		SourceID:  owner.sourceID,
		CreatedAt: imp.now,
		UpdatedAt: imp.now,
	})
}

// refinePedigrees is the post-pass over FAMC/PEDI links. FamilyChild
// rows are emitted while walking FAM records, which may appear after
// the INDI records that qualify them, hence the second scan.
func (imp *gedcomImporter) refinePedigrees(doc *gedcom.Document) {
	byKey := map[[2]uuid.UUID]*types.FamilyChild{}
	for _, fc := range imp.res.FamilyChildren {
		byKey[[2]uuid.UUID{fc.FamilyID, fc.PersonID}] = fc
	}
	for _, rec := range doc.Records {
		if rec.Tag != "INDI" {
			continue
		}
		personID, ok := imp.personXrefs[rec.Xref]
		if !ok {
			continue
		}
		for _, n := range rec.Children {
			if n.Tag != "FAMC" {
				continue
			}
			familyID, ok := imp.familyXrefs[gedcom.TrimPointer(n.Value)]
			if !ok {
				continue
			}
			pedi := strings.ToLower(strings.TrimSpace(n.ValueOf("PEDI")))
			childType, ok := pedigreeChildTypes[pedi]
			if !ok {
				continue
			}
			if fc := byKey[[2]uuid.UUID{familyID, personID}]; fc != nil {
				fc.ChildType = childType
			}
		}
	}
}

func mapSex(value string) types.Sex {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "M":
		return types.SexMale
	case "F":
		return types.SexFemale
	default:
		return types.SexUnknown
	}
}
