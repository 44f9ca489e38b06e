package services

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/rootline-app/rootline-backend/internal/gedcom"
	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/types"
	"github.com/rootline-app/rootline-backend/internal/version"
)

// EntitySet is the fully loaded input of an export. All entities must
// belong to one tree; the caller ensures that.
type EntitySet struct {
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
}

type ExportResult struct {
	Gedcom   string
	Warnings []string
}

type GedcomExportService interface {
	Export(set *EntitySet) (*ExportResult, error)
}

type gedcomExportService struct {
	log *logger.Logger
}

func NewGedcomExportService(log *logger.Logger) GedcomExportService {
	return &gedcomExportService{log: log.With("service", "GedcomExportService")}
}

var eventTypeTags = map[types.EventType]string{
	types.EventTypeBirth:          "BIRT",
	types.EventTypeBaptism:        "BAPM",
	types.EventTypeChristening:    "CHR",
	types.EventTypeDeath:          "DEAT",
	types.EventTypeBurial:         "BURI",
	types.EventTypeCremation:      "CREM",
	types.EventTypeAdoption:       "ADOP",
	types.EventTypeImmigration:    "IMMI",
	types.EventTypeEmigration:     "EMIG",
	types.EventTypeNaturalization: "NATU",
	types.EventTypeCensus:         "CENS",
	types.EventTypeGraduation:     "GRAD",
	types.EventTypeRetirement:     "RETI",
	types.EventTypeWill:           "WILL",
	types.EventTypeProbate:        "PROB",
	types.EventTypeResidence:      "RESI",
	types.EventTypeMarriage:       "MARR",
	types.EventTypeDivorce:        "DIV",
	types.EventTypeEngagement:     "ENGA",
	types.EventTypeMarriageBanns:  "MARB",
	types.EventTypeAnnulment:      "ANUL",
	// The occupation/other distinction has no 5.5.1 tag of its own;
	// both fall back to the generic event.
	types.EventTypeOccupation: "EVEN",
	types.EventTypeOther:      "EVEN",
}

var nameTypeValues = map[types.NameType]string{
	types.NameTypeBirth:       "birth",
	types.NameTypeMarried:     "married",
	types.NameTypeAlsoKnownAs: "aka",
	types.NameTypeMaiden:      "maiden",
	types.NameTypeReligious:   "religious",
}

var confidenceQuay = map[types.Confidence]string{
	types.ConfidenceVeryLow:  "0",
	types.ConfidenceLow:      "1",
	types.ConfidenceMedium:   "2",
	types.ConfidenceHigh:     "3",
	types.ConfidenceVeryHigh: "3",
}

var sexValues = map[types.Sex]string{
	types.SexMale:    "M",
	types.SexFemale:  "F",
	types.SexUnknown: "U",
}

// Export serializes an entity set back to GEDCOM 5.5.1. Xref numbers
// follow slice order, so two exports of the same set are identical.
// Dropped citations and Partner-role spouses become warnings, never
// failures.
func (s *gedcomExportService) Export(set *EntitySet) (*ExportResult, error) {
	ex := newGedcomExporter(set)
	doc := ex.buildDocument()
	s.log.Info("GEDCOM export finished",
		"persons", len(set.Persons),
		"families", len(set.Families),
		"warnings", len(ex.warnings))
	return &ExportResult{Gedcom: gedcom.Encode(doc), Warnings: ex.warnings}, nil
}

// gedcomExporter holds the per-export xref tables and lookup indices.
// Building the indices once keeps emission O(N) per collection instead
// of nested scans; they are scratch and die with the export.
type gedcomExporter struct {
	set      *EntitySet
	warnings []string

	personXrefs map[uuid.UUID]string
	familyXrefs map[uuid.UUID]string
	sourceXrefs map[uuid.UUID]string
	mediaXrefs  map[uuid.UUID]string

	placeByID         map[uuid.UUID]*types.Place
	mediaByID         map[uuid.UUID]*types.Media
	namesByPerson     map[uuid.UUID][]*types.PersonName
	eventsByPerson    map[uuid.UUID][]*types.Event
	eventsByFamily    map[uuid.UUID][]*types.Event
	citationsByPerson map[uuid.UUID][]*types.Citation
	citationsByEvent  map[uuid.UUID][]*types.Citation
	citationsByFamily map[uuid.UUID][]*types.Citation
	notesByPerson     map[uuid.UUID][]*types.Note
	notesByFamily     map[uuid.UUID][]*types.Note
	notesBySource     map[uuid.UUID][]*types.Note
	notesByEvent      map[uuid.UUID][]*types.Note
	linksByPerson     map[uuid.UUID][]*types.MediaLink
	linksByEvent      map[uuid.UUID][]*types.MediaLink
	linksByFamily     map[uuid.UUID][]*types.MediaLink
	spousesByFamily   map[uuid.UUID][]*types.FamilySpouse
	childrenByFamily  map[uuid.UUID][]*types.FamilyChild
}

func newGedcomExporter(set *EntitySet) *gedcomExporter {
	ex := &gedcomExporter{
		set:               set,
		personXrefs:       map[uuid.UUID]string{},
		familyXrefs:       map[uuid.UUID]string{},
		sourceXrefs:       map[uuid.UUID]string{},
		mediaXrefs:        map[uuid.UUID]string{},
		placeByID:         map[uuid.UUID]*types.Place{},
		mediaByID:         map[uuid.UUID]*types.Media{},
		namesByPerson:     map[uuid.UUID][]*types.PersonName{},
		eventsByPerson:    map[uuid.UUID][]*types.Event{},
		eventsByFamily:    map[uuid.UUID][]*types.Event{},
		citationsByPerson: map[uuid.UUID][]*types.Citation{},
		citationsByEvent:  map[uuid.UUID][]*types.Citation{},
		citationsByFamily: map[uuid.UUID][]*types.Citation{},
		notesByPerson:     map[uuid.UUID][]*types.Note{},
		notesByFamily:     map[uuid.UUID][]*types.Note{},
		notesBySource:     map[uuid.UUID][]*types.Note{},
		notesByEvent:      map[uuid.UUID][]*types.Note{},
		linksByPerson:     map[uuid.UUID][]*types.MediaLink{},
		linksByEvent:      map[uuid.UUID][]*types.MediaLink{},
		linksByFamily:     map[uuid.UUID][]*types.MediaLink{},
		spousesByFamily:   map[uuid.UUID][]*types.FamilySpouse{},
		childrenByFamily:  map[uuid.UUID][]*types.FamilyChild{},
	}

	for i, p := range set.Persons {
		ex.personXrefs[p.ID] = fmt.Sprintf("I%d", i+1)
	}
	for i, f := range set.Families {
		ex.familyXrefs[f.ID] = fmt.Sprintf("F%d", i+1)
	}
	for i, src := range set.Sources {
		ex.sourceXrefs[src.ID] = fmt.Sprintf("S%d", i+1)
	}
	for i, m := range set.Media {
		ex.mediaXrefs[m.ID] = fmt.Sprintf("M%d", i+1)
		ex.mediaByID[m.ID] = m
	}
	for _, pl := range set.Places {
		ex.placeByID[pl.ID] = pl
	}
	for _, n := range set.PersonNames {
		ex.namesByPerson[n.PersonID] = append(ex.namesByPerson[n.PersonID], n)
	}
	for _, ev := range set.Events {
		if ev.PersonID != nil {
			ex.eventsByPerson[*ev.PersonID] = append(ex.eventsByPerson[*ev.PersonID], ev)
		}
		if ev.FamilyID != nil {
			ex.eventsByFamily[*ev.FamilyID] = append(ex.eventsByFamily[*ev.FamilyID], ev)
		}
	}
	for _, c := range set.Citations {
		// A citation carrying an event id is emitted on the event, not
		// on the person or family it also points at.
		switch {
		case c.EventID != nil:
			ex.citationsByEvent[*c.EventID] = append(ex.citationsByEvent[*c.EventID], c)
		case c.PersonID != nil:
			ex.citationsByPerson[*c.PersonID] = append(ex.citationsByPerson[*c.PersonID], c)
		case c.FamilyID != nil:
			ex.citationsByFamily[*c.FamilyID] = append(ex.citationsByFamily[*c.FamilyID], c)
		}
	}
	for _, n := range set.Notes {
		switch {
		case n.PersonID != nil:
			ex.notesByPerson[*n.PersonID] = append(ex.notesByPerson[*n.PersonID], n)
		case n.EventID != nil:
			ex.notesByEvent[*n.EventID] = append(ex.notesByEvent[*n.EventID], n)
		case n.FamilyID != nil:
			ex.notesByFamily[*n.FamilyID] = append(ex.notesByFamily[*n.FamilyID], n)
		case n.SourceID != nil:
			ex.notesBySource[*n.SourceID] = append(ex.notesBySource[*n.SourceID], n)
		}
	}
	for _, l := range set.MediaLinks {
		switch {
		case l.PersonID != nil:
			ex.linksByPerson[*l.PersonID] = append(ex.linksByPerson[*l.PersonID], l)
		case l.EventID != nil:
			ex.linksByEvent[*l.EventID] = append(ex.linksByEvent[*l.EventID], l)
		case l.FamilyID != nil:
			ex.linksByFamily[*l.FamilyID] = append(ex.linksByFamily[*l.FamilyID], l)
		}
	}
	for _, sp := range set.FamilySpouses {
		ex.spousesByFamily[sp.FamilyID] = append(ex.spousesByFamily[sp.FamilyID], sp)
	}
	for _, fc := range set.FamilyChildren {
		ex.childrenByFamily[fc.FamilyID] = append(ex.childrenByFamily[fc.FamilyID], fc)
	}
	return ex
}

func (ex *gedcomExporter) warnf(format string, args ...interface{}) {
	ex.warnings = append(ex.warnings, fmt.Sprintf(format, args...))
}

func (ex *gedcomExporter) buildDocument() *gedcom.Document {
	doc := &gedcom.Document{}
	doc.Records = append(doc.Records, ex.buildHeader())
	for _, src := range ex.set.Sources {
		doc.Records = append(doc.Records, ex.buildSource(src))
	}
	for _, m := range ex.set.Media {
		doc.Records = append(doc.Records, ex.buildMedia(m))
	}
	for _, p := range ex.set.Persons {
		doc.Records = append(doc.Records, ex.buildIndividual(p))
	}
	for _, f := range ex.set.Families {
		doc.Records = append(doc.Records, ex.buildFamily(f))
	}
	doc.Records = append(doc.Records, gedcom.NewRecord("", "TRLR"))
	return doc
}

func (ex *gedcomExporter) buildHeader() *gedcom.Node {
	head := gedcom.NewRecord("", "HEAD")
	sour := head.Add("SOUR", version.Product)
	sour.Add("VERS", version.Version)
	sour.Add("NAME", version.Name)
	gedc := head.Add("GEDC", "")
	gedc.Add("VERS", "5.5.1")
	gedc.Add("FORM", "LINEAGE-LINKED")
	head.Add("CHAR", "UTF-8")
	return head
}

func (ex *gedcomExporter) buildSource(src *types.Source) *gedcom.Node {
	rec := gedcom.NewRecord(ex.sourceXrefs[src.ID], "SOUR")
	if src.Title != "" {
		rec.Add("TITL", src.Title)
	}
	if src.Author != "" {
		rec.Add("AUTH", src.Author)
	}
	if src.Publisher != "" {
		rec.Add("PUBL", src.Publisher)
	}
	if src.Abbreviation != "" {
		rec.Add("ABBR", src.Abbreviation)
	}
	for _, note := range ex.notesBySource[src.ID] {
		rec.Add("NOTE", note.Text)
	}
	return rec
}

func (ex *gedcomExporter) buildMedia(m *types.Media) *gedcom.Node {
	rec := gedcom.NewRecord(ex.mediaXrefs[m.ID], "OBJE")
	file := rec.Add("FILE", m.FilePath)
	if m.MimeType != "" {
		file.Add("FORM", m.MimeType)
	}
	if m.Title != "" {
		rec.Add("TITL", m.Title)
	}
	return rec
}

func (ex *gedcomExporter) buildIndividual(p *types.Person) *gedcom.Node {
	rec := gedcom.NewRecord(ex.personXrefs[p.ID], "INDI")

	rec.Add("SEX", sexValues[p.Sex])
	if name := primaryName(ex.namesByPerson[p.ID]); name != nil {
		if name.GivenNames != "" || name.Surname != "" {
			line := rec.Add("NAME", fmt.Sprintf("%s /%s/", name.GivenNames, name.Surname))
			if typeValue, ok := nameTypeValues[name.NameType]; ok {
				line.Add("TYPE", typeValue)
			}
		}
	}

	for _, ev := range ex.eventsByPerson[p.ID] {
		ex.addEvent(rec, ev)
	}
	for _, c := range ex.citationsByPerson[p.ID] {
		ex.addCitation(rec, c)
	}
	if notes := ex.notesByPerson[p.ID]; len(notes) > 0 {
		// One personal note per 5.5.1 emission policy.
		rec.Add("NOTE", notes[0].Text)
	}
	for _, link := range ex.linksByPerson[p.ID] {
		ex.addMediaLink(rec, link)
	}
	return rec
}

// primaryName picks the single name to emit: the first primary flag
// wins, else the first name at all.
func primaryName(names []*types.PersonName) *types.PersonName {
	for _, n := range names {
		if n.IsPrimary {
			return n
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return nil
}

func (ex *gedcomExporter) buildFamily(f *types.Family) *gedcom.Node {
	rec := gedcom.NewRecord(ex.familyXrefs[f.ID], "FAM")

	var husband, wife *types.FamilySpouse
	for _, sp := range ex.spousesByFamily[f.ID] {
		switch sp.Role {
		case types.SpouseRoleHusband:
			if husband == nil {
				husband = sp
			}
		case types.SpouseRoleWife:
			if wife == nil {
				wife = sp
			}
		default:
			// GEDCOM 5.5.1 has no encoding for partner roles.
			ex.warnf("partner spouse %s in family %s dropped: no GEDCOM 5.5.1 representation", sp.PersonID, f.ID)
		}
	}
	if husband != nil {
		ex.addSpouseLine(rec, "HUSB", husband)
	}
	if wife != nil {
		ex.addSpouseLine(rec, "WIFE", wife)
	}

	children := append([]*types.FamilyChild(nil), ex.childrenByFamily[f.ID]...)
	sort.SliceStable(children, func(i, j int) bool { return children[i].SortOrder < children[j].SortOrder })
	for _, fc := range children {
		xref, ok := ex.personXrefs[fc.PersonID]
		if !ok {
			ex.warnf("child %s in family %s has no exported person", fc.PersonID, f.ID)
			continue
		}
		rec.Add("CHIL", "@"+xref+"@")
	}

	for _, ev := range ex.eventsByFamily[f.ID] {
		ex.addEvent(rec, ev)
	}
	for _, c := range ex.citationsByFamily[f.ID] {
		ex.addCitation(rec, c)
	}
	for _, note := range ex.notesByFamily[f.ID] {
		rec.Add("NOTE", note.Text)
	}
	for _, link := range ex.linksByFamily[f.ID] {
		ex.addMediaLink(rec, link)
	}
	return rec
}

func (ex *gedcomExporter) addSpouseLine(rec *gedcom.Node, tag string, sp *types.FamilySpouse) {
	xref, ok := ex.personXrefs[sp.PersonID]
	if !ok {
		ex.warnf("spouse %s has no exported person", sp.PersonID)
		return
	}
	rec.Add(tag, "@"+xref+"@")
}

func (ex *gedcomExporter) addEvent(rec *gedcom.Node, ev *types.Event) {
	tag, ok := eventTypeTags[ev.EventType]
	if !ok {
		tag = "EVEN"
	}
	node := rec.Add(tag, "")
	if ev.DateValue != "" {
		// Verbatim; the parsed sort date is never re-serialized.
		node.Add("DATE", ev.DateValue)
	}
	if ev.PlaceID != nil {
		if place := ex.placeByID[*ev.PlaceID]; place != nil {
			plac := node.Add("PLAC", place.Name)
			if place.Latitude != nil && place.Longitude != nil {
				mapNode := plac.Add("MAP", "")
				mapNode.Add("LATI", FormatGedcomLatitude(*place.Latitude))
				mapNode.Add("LONG", FormatGedcomLongitude(*place.Longitude))
			}
		}
	}
	if ev.Description != "" {
		// One free-text field covers both death cause and generic
		// event narrative; CAUS is the shared carrier.
		node.Add("CAUS", ev.Description)
	}
	for _, c := range ex.citationsByEvent[ev.ID] {
		ex.addCitation(node, c)
	}
	for _, link := range ex.linksByEvent[ev.ID] {
		ex.addMediaLink(node, link)
	}
	if notes := ex.notesByEvent[ev.ID]; len(notes) > 0 {
		node.Add("NOTE", notes[0].Text)
	}
}

func (ex *gedcomExporter) addCitation(rec *gedcom.Node, c *types.Citation) {
	xref, ok := ex.sourceXrefs[c.SourceID]
	if !ok {
		ex.warnf("citation %s references source %s not present in export", c.ID, c.SourceID)
		return
	}
	node := rec.Add("SOUR", "@"+xref+"@")
	if c.Page != "" {
		node.Add("PAGE", c.Page)
	}
	node.Add("QUAY", confidenceQuay[c.Confidence])
}

func (ex *gedcomExporter) addMediaLink(rec *gedcom.Node, link *types.MediaLink) {
	xref, ok := ex.mediaXrefs[link.MediaID]
	if !ok {
		ex.warnf("media link %s references media %s not present in export", link.ID, link.MediaID)
		return
	}
	rec.Add("OBJE", "@"+xref+"@")
}
