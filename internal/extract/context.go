package extract

import (
	"log/slog"

	"github.com/erplens/erplens/internal/checkpoint"
	"github.com/erplens/erplens/internal/coverage"
	"github.com/erplens/erplens/internal/dict"
	"github.com/erplens/erplens/internal/gateway"
)

// SystemDescriptor identifies the source installation under analysis.
type SystemDescriptor struct {
	Family  string `yaml:"family" json:"family"`
	Release string `yaml:"release" json:"release"`
	Client  string `yaml:"client" json:"client"`
	// Fiscal period window bounding transactional extraction, YYYYMMDD.
	FiscalFrom string `yaml:"fiscal_from,omitempty" json:"fiscal_from,omitempty"`
	FiscalTo   string `yaml:"fiscal_to,omitempty" json:"fiscal_to,omitempty"`
}

// Context binds the shared services every extractor runs against. The
// checkpoint store and coverage tracker are fixed for the context's
// lifetime; repeated reads return the same instances.
type Context struct {
	gateway     gateway.Gateway
	checkpoints *checkpoint.Store
	coverage    *coverage.Tracker
	dictionary  *dict.Dictionary
	system      SystemDescriptor
	logger      *slog.Logger
}

// NewContext composes a context. The dictionary may be nil.
func NewContext(gw gateway.Gateway, cp *checkpoint.Store, cov *coverage.Tracker, d *dict.Dictionary, sys SystemDescriptor, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		gateway:     gw,
		checkpoints: cp,
		coverage:    cov,
		dictionary:  d,
		system:      sys,
		logger:      logger,
	}
}

func (c *Context) Gateway() gateway.Gateway       { return c.gateway }
func (c *Context) Checkpoints() *checkpoint.Store { return c.checkpoints }
func (c *Context) Coverage() *coverage.Tracker    { return c.coverage }
func (c *Context) Dictionary() *dict.Dictionary   { return c.dictionary }
func (c *Context) System() SystemDescriptor       { return c.system }
func (c *Context) Logger() *slog.Logger           { return c.logger }
