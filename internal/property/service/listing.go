package service

import (
	"context"
	"errors"

	"estatehub/internal/property/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

// List returns one page of listings and the total number of matches.
func (s *Service) List(ctx context.Context, f models.Filter, q models.ListQuery) ([]*models.Listing, int64, error) {
	listings, total, err := s.store.List(ctx, f, q)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching properties")
	}
	return listings, total, nil
}

// Get loads the detail page. With trackView set the caller's visit is
// recorded unless the same viewer was seen within the view window.
func (s *Service) Get(ctx context.Context, propertyID id.PropertyID, trackView bool) (*models.Detail, error) {
	detail, err := s.store.FindDetail(ctx, propertyID)
	if err != nil {
		return nil, translateLookup(err, "Server error fetching property")
	}

	if trackView {
		recorded, err := s.trackView(ctx, propertyID)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to record property view",
				"error", err,
				"property_id", propertyID.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
		} else if recorded {
			device, _ := requestcontext.Device(ctx)
			s.metrics.IncPropertyView(device)
		}
	}
	return detail, nil
}

// trackView records at most one view per viewer per window. Signed-in viewers
// are keyed by user id, anonymous viewers by client IP.
func (s *Service) trackView(ctx context.Context, propertyID id.PropertyID) (bool, error) {
	now := requestcontext.Now(ctx)
	ip := requestcontext.ClientIP(ctx)

	var viewer *id.UserID
	key := propertyID.String() + "|ip:" + ip
	if userID := requestcontext.UserID(ctx); !userID.IsNil() {
		viewer = &userID
		key = propertyID.String() + "|user:" + userID.String()
	}

	recorded := false
	err := s.viewLocks.Do(key, func() error {
		seen, err := s.store.RecentViewExists(ctx, propertyID, viewer, ip, now.Add(-s.viewWindow))
		if err != nil || seen {
			return err
		}
		device, browser := requestcontext.Device(ctx)
		err = s.store.RecordView(ctx, &models.View{
			PropertyID: propertyID,
			UserID:     viewer,
			IPAddress:  ip,
			UserAgent:  requestcontext.UserAgent(ctx),
			Device:     device,
			Browser:    browser,
			ViewedAt:   now,
		})
		recorded = err == nil
		return err
	})
	return recorded, err
}

// Similar returns up to limit available listings resembling the given one.
func (s *Service) Similar(ctx context.Context, propertyID id.PropertyID, limit int) ([]*models.Listing, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	limit = min(limit, maxSimilarLimit)

	p, err := s.store.FindByID(ctx, propertyID)
	if err != nil {
		return nil, translateLookup(err, "Server error fetching similar properties")
	}
	listings, err := s.store.Similar(ctx, p, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error fetching similar properties")
	}
	return listings, nil
}

func translateLookup(err error, internalMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "Property not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}
