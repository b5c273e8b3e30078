package cli

import (
	"flag"
	"io"

	"github.com/GustavoCaso/finbot/internal/config"
	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/store"
)

// Env carries what a subcommand needs to run.
type Env struct {
	Config *config.Config
	Store  *store.Store
	Logger *logger.Logger
	Out    io.Writer
}

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(env Env) error
}
