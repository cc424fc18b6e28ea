// Package reportservice exposes the analytical reports and data quality checks by name.
//
// Every call reads one snapshot from the repo and runs pure functions over it. Callers
// that need several reports to agree with each other should use RunBatch, which shares
// a single snapshot between them.
package reportservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/go-petr/bank-insights/internal/audit"
	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/clockpkg"
)

// Repo provides the table loader interface needed by report service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package reportservice
type Repo interface {
	Load(ctx context.Context) (domain.Snapshot, error)
}

// Service facilitates report service layer logic.
type Service struct {
	repo  Repo
	clock clockpkg.Clock
}

// New returns report service reading tables from repo and deciding "today" with clock.
func New(repo Repo, clock clockpkg.Clock) *Service {
	return &Service{
		repo:  repo,
		clock: clock,
	}
}

// Reports lists the registered reports in catalog order.
func (s *Service) Reports() []domain.ReportInfo {
	infos := make([]domain.ReportInfo, len(catalog))
	for i, r := range catalog {
		infos[i] = r.info
		if infos[i].Params == nil {
			infos[i].Params = []string{}
		}
	}

	return infos
}

// Run validates the parameters, loads a snapshot and runs the named report on it.
func (s *Service) Run(ctx context.Context, name string, p domain.ReportParams) (domain.ReportResult, error) {
	l := zerolog.Ctx(ctx)

	r, err := s.prepare(ctx, name, p)
	if err != nil {
		return domain.ReportResult{}, err
	}

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		l.Error().Err(err).Str("report", name).Msg("cannot load tables")
		return domain.ReportResult{}, err
	}

	return s.execute(ctx, r, snapshot, clockpkg.Today(s.clock), p)
}

// RunBatch runs every request against one snapshot and returns the results in request order.
//
// All parameters are validated before the tables are loaded; the first invalid request
// fails the whole batch.
func (s *Service) RunBatch(ctx context.Context, reqs []domain.ReportRequest) ([]domain.ReportResult, error) {
	l := zerolog.Ctx(ctx)

	reports := make([]report, len(reqs))
	for i, req := range reqs {
		r, err := s.prepare(ctx, req.Name, req.Params)
		if err != nil {
			return nil, err
		}
		reports[i] = r
	}

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		l.Error().Err(err).Msg("cannot load tables")
		return nil, err
	}

	today := clockpkg.Today(s.clock)
	results := make([]domain.ReportResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)

	for i := range reqs {
		i := i

		g.Go(func() error {
			res, err := s.execute(gctx, reports[i], snapshot, today, reqs[i].Params)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Audit loads a snapshot and runs every data quality check on it.
func (s *Service) Audit(ctx context.Context) (domain.AuditReport, error) {
	l := zerolog.Ctx(ctx)

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		l.Error().Err(err).Msg("cannot load tables")
		return domain.AuditReport{}, err
	}

	findings := audit.Run(snapshot)

	l.Debug().Int("findings", findings.Total()).Msg("audit finished")

	return findings, nil
}

func (s *Service) prepare(ctx context.Context, name string, p domain.ReportParams) (report, error) {
	l := zerolog.Ctx(ctx)

	r, err := lookup(name)
	if err != nil {
		l.Info().Err(err).Send()
		return report{}, err
	}

	if err := r.validate(p); err != nil {
		l.Info().Err(err).Str("report", name).Send()
		return report{}, err
	}

	return r, nil
}

func (s *Service) execute(ctx context.Context, r report, snapshot domain.Snapshot, today time.Time, p domain.ReportParams) (domain.ReportResult, error) {
	l := zerolog.Ctx(ctx)

	start := time.Now()

	data, count, err := r.run(snapshot, today, p)
	if err != nil {
		l.Info().Err(err).Str("report", r.info.Name).Send()
		return domain.ReportResult{}, err
	}

	l.Debug().
		Str("report", r.info.Name).
		Int("rows", count).
		Dur("elapsed", time.Since(start)).
		Send()

	return domain.ReportResult{
		Name:  r.info.Name,
		Count: count,
		Rows:  data,
	}, nil
}
