package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/multirepo/internal/domain/repositories"
	docRepo "github.com/rios0rios0/multirepo/internal/infrastructure/repositories/document"
	gitRepo "github.com/rios0rios0/multirepo/internal/infrastructure/repositories/git"
	hclRepo "github.com/rios0rios0/multirepo/internal/infrastructure/repositories/hcl"
	tomlRepo "github.com/rios0rios0/multirepo/internal/infrastructure/repositories/toml"
	xmlRepo "github.com/rios0rios0/multirepo/internal/infrastructure/repositories/xml"
	yamlRepo "github.com/rios0rios0/multirepo/internal/infrastructure/repositories/yaml"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register manifest registry with every supported serialization
	if err := container.Provide(func() *ManifestRegistry {
		reg := NewManifestRegistry()
		reg.Register(xmlRepo.NewManifestRepository())
		reg.Register(yamlRepo.NewManifestRepository())
		reg.Register(tomlRepo.NewManifestRepository())
		reg.Register(hclRepo.NewManifestRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.DocumentRepository {
		return docRepo.NewDocumentRepository()
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.GitRepository {
		return gitRepo.NewGitRepository()
	}); err != nil {
		return err
	}

	return nil
}
