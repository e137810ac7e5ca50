package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/importer"
	"github.com/alexanderramin/agencyos/internal/repository"
)

type metricsImportService struct {
	cards    repository.WorkCardRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMetricsImportService(cards repository.WorkCardRepo, uow db.UnitOfWork, observers ...UseCaseObserver) MetricsImportService {
	return &metricsImportService{cards: cards, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *metricsImportService) ImportFile(ctx context.Context, cardID, path string) (*MetricsImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics file: %w", err)
	}
	defer f.Close()
	return s.Import(ctx, cardID, f)
}

func (s *metricsImportService) Import(ctx context.Context, cardID string, r io.Reader) (result *MetricsImportResult, err error) {
	fields := map[string]any{"card": cardID}
	ctx, done := track(ctx, s.observer, "import-metrics", fields)
	defer func() { done(err) }()

	if _, err = s.cards.GetByID(ctx, cardID); err != nil {
		return nil, err
	}

	metrics, err := importer.ParseMetricsCSV(r)
	if err != nil {
		return nil, fmt.Errorf("importing metrics: %w", err)
	}
	fields["rows"] = metrics.Rows
	fields["skipped_cells"] = metrics.SkippedCells

	var card *domain.WorkCard
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWorkCardRepo(tx)
		c, err := repo.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		if err := (domain.WorkCardPatch{Metrics: metrics.AsMap()}).Apply(c, time.Now().UTC()); err != nil {
			return err
		}
		if err := repo.Update(ctx, c); err != nil {
			return err
		}
		card = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &MetricsImportResult{Card: card, Metrics: metrics}, nil
}
