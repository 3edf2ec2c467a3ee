package persistence

import (
	"database/sql"

	"networkd-agent/internal/domain/errors"
	"networkd-agent/internal/domain/interfaces"
	"networkd-agent/internal/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// SpecRepositoryFactory is a factory that creates the configured spec-source backend
type SpecRepositoryFactory struct {
	config     *config.Config
	db         *sql.DB
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
}

// NewSpecRepositoryFactory creates a new SpecRepositoryFactory
func NewSpecRepositoryFactory(
	cfg *config.Config,
	db *sql.DB,
	fs interfaces.FileSystem,
	logger *logrus.Logger,
) *SpecRepositoryFactory {
	return &SpecRepositoryFactory{
		config:     cfg,
		db:         db,
		fileSystem: fs,
		logger:     logger,
	}
}

// CreateSpecRepository creates the SpecRepository selected by SPEC_SOURCE
func (f *SpecRepositoryFactory) CreateSpecRepository() (interfaces.SpecRepository, error) {
	switch f.config.Source.Backend {
	case config.SourceMySQL:
		if f.db == nil {
			return nil, errors.NewSystemError("mysql spec source selected but no database connection available", nil)
		}
		return NewMySQLSpecRepository(f.db, f.logger), nil

	case config.SourceYAML:
		return NewYAMLSpecRepository(f.fileSystem, f.config.Source.SpecFile, f.logger), nil

	default:
		return nil, errors.NewSystemError("unsupported spec source backend: "+f.config.Source.Backend, nil)
	}
}
