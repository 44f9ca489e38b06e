package app

import (
	"gorm.io/gorm"

	"github.com/rootline-app/rootline-backend/internal/logger"
	"github.com/rootline-app/rootline-backend/internal/repos"
)

type Repos struct {
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

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Tree:           repos.NewTreeRepo(db, log),
		TreeImport:     repos.NewTreeImportRepo(db, log),
		Person:         repos.NewPersonRepo(db, log),
		PersonName:     repos.NewPersonNameRepo(db, log),
		Family:         repos.NewFamilyRepo(db, log),
		FamilySpouse:   repos.NewFamilySpouseRepo(db, log),
		FamilyChild:    repos.NewFamilyChildRepo(db, log),
		Event:          repos.NewEventRepo(db, log),
		Place:          repos.NewPlaceRepo(db, log),
		Source:         repos.NewSourceRepo(db, log),
		Citation:       repos.NewCitationRepo(db, log),
		Media:          repos.NewMediaRepo(db, log),
		MediaLink:      repos.NewMediaLinkRepo(db, log),
		Note:           repos.NewNoteRepo(db, log),
		PersonAncestry: repos.NewPersonAncestryRepo(db, log),
	}
}
