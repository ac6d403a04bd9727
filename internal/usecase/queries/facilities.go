package queries

import (
	"context"
	"log/slog"

	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase/shared"
)

const facilitiesFlag = "facilities"

// FacilityQueries lists the facilities an owner can select.
type FacilityQueries interface {
	List(ctx context.Context) ([]shared.Facility, error)
}

type facilityQueriesImpl struct {
	catalog shared.CatalogGateway
	session *shared.Session
	logger  *slog.Logger
}

func NewFacilityQueries(catalog shared.CatalogGateway, session *shared.Session, logger *slog.Logger) FacilityQueries {
	return &facilityQueriesImpl{catalog: catalog, session: session, logger: logger}
}

// List walks every page of the facility catalog. Any page failing fails the
// whole list; there is no partial result.
func (q *facilityQueriesImpl) List(ctx context.Context) ([]shared.Facility, error) {
	if q.session.Loading().Begin(facilitiesFlag) {
		defer q.session.Loading().End(facilitiesFlag)
	}

	var out []shared.Facility
	for page := 1; ; page++ {
		facilities, info, err := q.catalog.ListFacilities(ctx, page)
		if err != nil {
			q.logger.ErrorContext(ctx, "facility list failed",
				slog.Int("page", page),
				slog.String("error", err.Error()))
			return nil, errs.Mark(errs.Wrapf(err, "list facilities page %d", page), shared.ErrLoadFailed)
		}
		out = append(out, facilities...)
		if page >= info.TotalPages {
			return out, nil
		}
	}
}
