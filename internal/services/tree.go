package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/repos"
	"github.com/rootline-app/rootline-backend/internal/types"
)

type TreeService interface {
	CreateTree(ctx context.Context, name, description string) (*types.Tree, error)
	GetTree(ctx context.Context, treeID uuid.UUID) (*types.Tree, error)
	ListTrees(ctx context.Context, limit, offset int) ([]*types.Tree, error)
	DeleteTree(ctx context.Context, treeID uuid.UUID) error
	ImportGedcom(ctx context.Context, treeID uuid.UUID, fileName, gedcomText string) (*types.TreeImport, error)
	ListImports(ctx context.Context, treeID uuid.UUID, limit, offset int) ([]*types.TreeImport, error)
	ExportGedcom(ctx context.Context, treeID uuid.UUID) (*ExportResult, error)
	RebuildAncestry(ctx context.Context, treeID uuid.UUID) (int, error)
}

// TreeServiceRepos bundles the per-entity repositories the service
// persists through.
type TreeServiceRepos struct {
	Tree           repos.TreeRepo
	TreeImport     repos.TreeImportRepo
	Person         repos.PersonRepo
	PersonName     repos.PersonNameRepo
	Family         repos.FamilyRepo
	FamilySpouse   repos.FamilySpouseRepo
	FamilyChild    repos.FamilyChildRepo
	Event          repos.EventRepo
	Place          repos.PlaceRepo
	Source         repos.SourceRepo
	Citation       repos.CitationRepo
	Media          repos.MediaRepo
	MediaLink      repos.MediaLinkRepo
	Note           repos.NoteRepo
	PersonAncestry repos.PersonAncestryRepo
}

type treeService struct {
	db       *gorm.DB
	log      *logger.Logger
	importer GedcomImportService
	exporter GedcomExportService
	repos    TreeServiceRepos
}

func NewTreeService(db *gorm.DB, log *logger.Logger, importer GedcomImportService, exporter GedcomExportService, serviceRepos TreeServiceRepos) TreeService {
	return &treeService{
		db:       db,
		log:      log.With("service", "TreeService"),
		importer: importer,
		exporter: exporter,
		repos:    serviceRepos,
	}
}

func (ts *treeService) CreateTree(ctx context.Context, name, description string) (*types.Tree, error) {
	tree := &types.Tree{
		ID:          types.NewID(),
		Name:        name,
		Description: description,
	}
	created, err := ts.repos.Tree.Create(ctx, nil, []*types.Tree{tree})
	if err != nil {
		return nil, fmt.Errorf("create tree: %w", err)
	}
	return created[0], nil
}

func (ts *treeService) GetTree(ctx context.Context, treeID uuid.UUID) (*types.Tree, error) {
	found, err := ts.repos.Tree.GetByIDs(ctx, nil, []uuid.UUID{treeID})
	if err != nil {
		return nil, fmt.Errorf("fetch tree: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("tree %s does not exist", treeID)
	}
	return found[0], nil
}

func (ts *treeService) ListTrees(ctx context.Context, limit, offset int) ([]*types.Tree, error) {
	return ts.repos.Tree.List(ctx, nil, limit, offset)
}

func (ts *treeService) DeleteTree(ctx context.Context, treeID uuid.UUID) error {
	return ts.repos.Tree.Delete(ctx, nil, treeID)
}

// ImportGedcom runs the codec, then persists the whole result in one
// transaction in the foreign-key-safe order the codec guarantees:
// places, sources, media, persons, person_names, families,
// family_spouses, family_children, events, citations, media_links,
// notes, person_ancestry. The outcome is recorded as a TreeImport row
// either way.
func (ts *treeService) ImportGedcom(ctx context.Context, treeID uuid.UUID, fileName, gedcomText string) (*types.TreeImport, error) {
	if _, err := ts.GetTree(ctx, treeID); err != nil {
		return nil, err
	}

	result, err := ts.importer.Import(gedcomText, treeID)
	if err != nil {
		record := ts.recordImport(ctx, treeID, fileName, types.TreeImportStatusFailed, nil, err)
		return record, err
	}

	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ts.repos.Place.Create(ctx, tx, result.Places); err != nil {
			return fmt.Errorf("persist places: %w", err)
		}
		if _, err := ts.repos.Source.Create(ctx, tx, result.Sources); err != nil {
			return fmt.Errorf("persist sources: %w", err)
		}
		if _, err := ts.repos.Media.Create(ctx, tx, result.Media); err != nil {
			return fmt.Errorf("persist media: %w", err)
		}
		if _, err := ts.repos.Person.Create(ctx, tx, result.Persons); err != nil {
			return fmt.Errorf("persist persons: %w", err)
		}
		if _, err := ts.repos.PersonName.Create(ctx, tx, result.PersonNames); err != nil {
			return fmt.Errorf("persist person names: %w", err)
		}
		if _, err := ts.repos.Family.Create(ctx, tx, result.Families); err != nil {
			return fmt.Errorf("persist families: %w", err)
		}
		if _, err := ts.repos.FamilySpouse.Create(ctx, tx, result.FamilySpouses); err != nil {
			return fmt.Errorf("persist family spouses: %w", err)
		}
		if _, err := ts.repos.FamilyChild.Create(ctx, tx, result.FamilyChildren); err != nil {
			return fmt.Errorf("persist family children: %w", err)
		}
		if _, err := ts.repos.Event.Create(ctx, tx, result.Events); err != nil {
			return fmt.Errorf("persist events: %w", err)
		}
		if _, err := ts.repos.Citation.Create(ctx, tx, result.Citations); err != nil {
			return fmt.Errorf("persist citations: %w", err)
		}
		if _, err := ts.repos.MediaLink.Create(ctx, tx, result.MediaLinks); err != nil {
			return fmt.Errorf("persist media links: %w", err)
		}
		if _, err := ts.repos.Note.Create(ctx, tx, result.Notes); err != nil {
			return fmt.Errorf("persist notes: %w", err)
		}
		if _, err := ts.repos.PersonAncestry.Create(ctx, tx, result.PersonAncestry); err != nil {
			return fmt.Errorf("persist person ancestry: %w", err)
		}
		return nil
	})
	if err != nil {
		record := ts.recordImport(ctx, treeID, fileName, types.TreeImportStatusFailed, result, err)
		return record, fmt.Errorf("persist import: %w", err)
	}

	record := ts.recordImport(ctx, treeID, fileName, types.TreeImportStatusCompleted, result, nil)
	return record, nil
}

func (ts *treeService) recordImport(ctx context.Context, treeID uuid.UUID, fileName, status string, result *ImportResult, cause error) *types.TreeImport {
	record := &types.TreeImport{
		ID:       types.NewID(),
		TreeID:   treeID,
		FileName: fileName,
		Status:   status,
	}
	summary := map[string]interface{}{}
	if result != nil {
		record.Persons = len(result.Persons)
		record.Families = len(result.Families)
		summary["warnings"] = result.Warnings
		summary["events"] = len(result.Events)
		summary["places"] = len(result.Places)
		summary["sources"] = len(result.Sources)
		summary["ancestry_rows"] = len(result.PersonAncestry)
	}
	if cause != nil {
		summary["error"] = cause.Error()
	}
	if raw, err := json.Marshal(summary); err == nil {
		record.Summary = datatypes.JSON(raw)
	}
	if _, err := ts.repos.TreeImport.Create(ctx, nil, []*types.TreeImport{record}); err != nil {
		ts.log.Warn("Failed to record import run", "tree_id", treeID, "error", err)
	}
	return record
}

func (ts *treeService) ListImports(ctx context.Context, treeID uuid.UUID, limit, offset int) ([]*types.TreeImport, error) {
	return ts.repos.TreeImport.ListByTreeID(ctx, nil, treeID, limit, offset)
}

// ExportGedcom assembles the tree's entity set and hands it to the
// exporter. The tree-scoped collections load in parallel; the child
// collections load after, keyed by the parents they hang off.
func (ts *treeService) ExportGedcom(ctx context.Context, treeID uuid.UUID) (*ExportResult, error) {
	if _, err := ts.GetTree(ctx, treeID); err != nil {
		return nil, err
	}

	set := &EntitySet{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		set.Persons, err = ts.repos.Person.ListByTreeID(gctx, nil, treeID, 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		set.Families, err = ts.repos.Family.ListByTreeID(gctx, nil, treeID, 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		set.Events, err = ts.repos.Event.ListByTreeID(gctx, nil, treeID, 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		set.Places, err = ts.repos.Place.ListByTreeID(gctx, nil, treeID, 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		set.Sources, err = ts.repos.Source.ListByTreeID(gctx, nil, treeID, 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		set.Media, err = ts.repos.Media.ListByTreeID(gctx, nil, treeID, 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		set.Notes, err = ts.repos.Note.ListByTreeID(gctx, nil, treeID, 0, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load export entity set: %w", err)
	}

	personIDs := make([]uuid.UUID, 0, len(set.Persons))
	for _, p := range set.Persons {
		personIDs = append(personIDs, p.ID)
	}
	familyIDs := make([]uuid.UUID, 0, len(set.Families))
	for _, f := range set.Families {
		familyIDs = append(familyIDs, f.ID)
	}
	sourceIDs := make([]uuid.UUID, 0, len(set.Sources))
	for _, src := range set.Sources {
		sourceIDs = append(sourceIDs, src.ID)
	}
	mediaIDs := make([]uuid.UUID, 0, len(set.Media))
	for _, m := range set.Media {
		mediaIDs = append(mediaIDs, m.ID)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		set.PersonNames, err = ts.repos.PersonName.ListByPersonIDs(gctx, nil, personIDs)
		return err
	})
	g.Go(func() error {
		var err error
		set.FamilySpouses, err = ts.repos.FamilySpouse.ListByFamilyIDs(gctx, nil, familyIDs)
		return err
	})
	g.Go(func() error {
		var err error
		set.FamilyChildren, err = ts.repos.FamilyChild.ListByFamilyIDs(gctx, nil, familyIDs)
		return err
	})
	g.Go(func() error {
		var err error
		set.Citations, err = ts.repos.Citation.ListBySourceIDs(gctx, nil, sourceIDs)
		return err
	})
	g.Go(func() error {
		var err error
		set.MediaLinks, err = ts.repos.MediaLink.ListByMediaIDs(gctx, nil, mediaIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load export entity set: %w", err)
	}

	return ts.exporter.Export(set)
}

// RebuildAncestry recomputes the closure from the stored spouse and
// child rows and swaps it in atomically. Returns the new row count.
func (ts *treeService) RebuildAncestry(ctx context.Context, treeID uuid.UUID) (int, error) {
	families, err := ts.repos.Family.ListByTreeID(ctx, nil, treeID, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("load families: %w", err)
	}
	familyIDs := make([]uuid.UUID, 0, len(families))
	for _, f := range families {
		familyIDs = append(familyIDs, f.ID)
	}
	spouses, err := ts.repos.FamilySpouse.ListByFamilyIDs(ctx, nil, familyIDs)
	if err != nil {
		return 0, fmt.Errorf("load family spouses: %w", err)
	}
	children, err := ts.repos.FamilyChild.ListByFamilyIDs(ctx, nil, familyIDs)
	if err != nil {
		return 0, fmt.Errorf("load family children: %w", err)
	}

	rows := BuildAncestryClosure(treeID, spouses, children)
	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ts.repos.PersonAncestry.DeleteByTreeID(ctx, tx, treeID); err != nil {
			return err
		}
		_, err := ts.repos.PersonAncestry.Create(ctx, tx, rows)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("replace ancestry closure: %w", err)
	}
	ts.log.Info("Ancestry closure rebuilt", "tree_id", treeID, "rows", len(rows))
	return len(rows), nil
}
