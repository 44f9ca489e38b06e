package app

import (
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/services"
)

type Services struct {
	GedcomImport services.GedcomImportService
	GedcomExport services.GedcomExportService
	Tree         services.TreeService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	importService := services.NewGedcomImportService(log)
	exportService := services.NewGedcomExportService(log)

	treeService := services.NewTreeService(db, log, importService, exportService, services.TreeServiceRepos{
		Tree:           reposet.Tree,
		TreeImport:     reposet.TreeImport,
		Person:         reposet.Person,
		PersonName:     reposet.PersonName,
		Family:         reposet.Family,
		FamilySpouse:   reposet.FamilySpouse,
		FamilyChild:    reposet.FamilyChild,
		Event:          reposet.Event,
		Place:          reposet.Place,
		Source:         reposet.Source,
		Citation:       reposet.Citation,
		Media:          reposet.Media,
		MediaLink:      reposet.MediaLink,
		Note:           reposet.Note,
		PersonAncestry: reposet.PersonAncestry,
	})

	return Services{
		GedcomImport: importService,
		GedcomExport: exportService,
		Tree:         treeService,
	}, nil
}
