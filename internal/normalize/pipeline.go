// Package normalize runs the configured header normalization steps over a
// document: coordinates, column projection, flattening and shortening.
package normalize

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hdrnorm/internal/config"
	"hdrnorm/internal/coords"
	"hdrnorm/internal/diagnostic"
	"hdrnorm/internal/flatten"
	"hdrnorm/internal/header"
	"hdrnorm/internal/project"
	"hdrnorm/internal/shorten"
)

// Pipeline applies a Config to header documents.
type Pipeline struct {
	cfg      config.Config
	logger   *zap.Logger
	resolver coords.Resolver
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithResolver enables the coordinates step.
func WithResolver(r coords.Resolver) Option {
	return func(p *Pipeline) {
		p.resolver = r
	}
}

// New creates a pipeline for cfg.
func New(cfg config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result is the outcome of Run.
type Result struct {
	// Header is the normalized header; the same instance as the document meta.
	Header *header.Header
	// Table holds the projected columns.
	Table *project.Table
	// Position is set when the coordinates step ran.
	Position *coords.Position
	// Diagnostics collects the non-fatal reports of every step.
	Diagnostics diagnostic.Diagnostics
}

// Run normalizes doc.Meta in place. Columns are projected before flattening
// so keyword sequences can follow the nested structure. On error the header
// may hold the changes of the steps that already ran.
func (p *Pipeline) Run(ctx context.Context, doc *header.Document) (*Result, error) {
	h := doc.Meta
	res := &Result{Header: h}

	if p.resolver != nil {
		pos, err := coords.AddRADec(ctx, h, p.resolver)
		if err != nil {
			return nil, fmt.Errorf("add coordinates: %w", err)
		}

		res.Position = &pos
		p.logger.Debug("Resolved object coordinates",
			zap.Float64("ra", pos.RA),
			zap.Float64("dec", pos.Dec))
	}

	tbl, err := p.project(h, doc.Rows)
	if err != nil {
		return nil, err
	}

	res.Table = tbl

	_, diags := flatten.Flatten(h, p.cfg.FlattenOptions()...)
	p.report("flatten", diags)
	res.Diagnostics.Merge(diags)
	p.logger.Debug("Flattened header", zap.Int("keys", h.Len()))

	if p.cfg.Shorten.Enabled {
		_, sdiags, err := shorten.Shorten(h, p.cfg.ShortenOptions()...)
		p.report("shorten", sdiags)
		res.Diagnostics.Merge(sdiags)

		if err != nil {
			return nil, fmt.Errorf("shorten keys: %w", err)
		}

		p.logger.Debug("Shortened keys",
			zap.Int("limit", p.cfg.Shorten.Limit),
			zap.Stringer("policy", p.cfg.Shorten.Policy))
	}

	p.logger.Info("Normalized header",
		zap.Int("keys", h.Len()),
		zap.Int("columns", tbl.Len()),
		zap.Int("warnings", len(res.Diagnostics.Warnings)))

	return res, nil
}

func (p *Pipeline) project(h *header.Header, rows int) (*project.Table, error) {
	tbl, err := project.NewTable(rows)
	if err != nil {
		return nil, err
	}

	opt := project.WithJoinSeparator(p.cfg.JoinSeparator)

	for _, col := range p.cfg.Columns {
		err := project.AddHeaderColumn(tbl, h, col.Keyword, col.Unit, opt)
		if err != nil {
			return nil, fmt.Errorf("project column %s: %w", col, err)
		}
	}

	if p.cfg.Epochs {
		err := project.AddEpochColumns(tbl, h, opt)
		if err != nil {
			return nil, fmt.Errorf("project epochs: %w", err)
		}
	}

	p.logger.Debug("Projected columns", zap.Strings("columns", tbl.Names()), zap.Int("rows", rows))

	return tbl, nil
}

func (p *Pipeline) report(step string, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fields := []zap.Field{
			zap.String("step", step),
			zap.String("code", d.Code),
			zap.String("key", d.Key),
		}

		switch d.Severity {
		case diagnostic.SeverityError:
			p.logger.Error(d.Message, fields...)
		case diagnostic.SeverityWarning:
			p.logger.Warn(d.Message, fields...)
		default:
			p.logger.Debug(d.Message, fields...)
		}
	}
}
