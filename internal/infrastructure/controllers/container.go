package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	for _, constructor := range []interface{}{
		NewInfoController,
		NewListController,
		NewGrepController,
		NewSyncController,
		NewControllers,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	infoController *InfoController,
	listController *ListController,
	grepController *GrepController,
	syncController *SyncController,
) *[]entities.Controller {
	return &[]entities.Controller{
		infoController,
		listController,
		grepController,
		syncController,
	}
}
