package rdkit

import (
	"fmt"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
)

// New builds the provider selected by cfg.Driver.
func New(cfg Config, logger logging.Logger) (molecule.StructureProvider, error) {
	switch cfg.Driver {
	case DriverHTTP, "":
		return NewHTTPProvider(cfg, nil, logger)
	case DriverExec:
		return NewExecProvider(cfg, logger)
	default:
		return nil, fmt.Errorf("rdkit: unknown driver %q", cfg.Driver)
	}
}

//Personal.AI order the ending
