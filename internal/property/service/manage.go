package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"estatehub/internal/audit"
	"estatehub/internal/platform/objectstore"
	"estatehub/internal/property/models"
	"estatehub/internal/sentinel"
	id "estatehub/pkg/domain"
	dErrors "estatehub/pkg/domain-errors"
	"estatehub/pkg/requestcontext"
)

const uploadConcurrency = 4

// Create publishes a listing for the caller. Media payloads are uploaded first
// so only URLs are stored; the featured flag is honored for admins only.
func (s *Service) Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.Property, error) {
	userID, role := requestcontext.UserID(ctx), requestcontext.Role(ctx)
	if !role.CanPost() {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only landlords, agents, and admins can post.")
	}
	if req.ManagedByAgentID != nil {
		if err := s.checkAgent(ctx, *req.ManagedByAgentID); err != nil {
			return nil, err
		}
	}

	images, err := s.storeMedia(ctx, req.ImageURLs)
	if err != nil {
		return nil, err
	}
	videos, err := s.storeMedia(ctx, req.VideoURLs)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	p := &models.Property{
		ID:               id.NewPropertyID(),
		Title:            req.Title,
		Description:      req.Description,
		Type:             req.Type,
		ListingType:      req.ListingType,
		Status:           id.PropertyAvailable,
		Price:            req.Price,
		Currency:         id.DefaultCurrency,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		Area:             req.Area,
		YearBuilt:        req.YearBuilt,
		ImageURLs:        images,
		VideoURLs:        videos,
		Amenities:        req.Amenities,
		IsFeatured:       req.IsFeatured && role.IsAdmin(),
		AvailableFrom:    req.AvailableFrom,
		PostedByID:       userID,
		ManagedByAgentID: req.ManagedByAgentID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error creating property")
	}

	s.metrics.IncPropertyCreated(string(p.ListingType))
	s.logger.InfoContext(ctx, "property created",
		"property_id", p.ID.String(),
		"user_id", userID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return p, nil
}

// Update applies the caller's changes. The poster, the managing agent and
// admins may edit; only admins may change the featured flag.
func (s *Service) Update(ctx context.Context, propertyID id.PropertyID, update models.Update) (*models.Property, error) {
	userID, role := requestcontext.UserID(ctx), requestcontext.Role(ctx)

	p, err := s.store.FindByID(ctx, propertyID)
	if err != nil {
		return nil, translateLookup(err, "Server error updating property")
	}
	if !p.CanEdit(userID, role) {
		return nil, dErrors.New(dErrors.CodeForbidden, "You are not authorized to update this property")
	}

	if !role.IsAdmin() {
		update.IsFeatured = nil
	}
	if update.ManagedByAgentID != nil {
		if err := s.checkAgent(ctx, *update.ManagedByAgentID); err != nil {
			return nil, err
		}
	}
	if update.IsEmpty() {
		return p, nil
	}
	if update.ImageURLs != nil {
		if update.ImageURLs, err = s.storeMedia(ctx, update.ImageURLs); err != nil {
			return nil, err
		}
	}
	if update.VideoURLs != nil {
		if update.VideoURLs, err = s.storeMedia(ctx, update.VideoURLs); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.Update(ctx, propertyID, update, requestcontext.Now(ctx))
	if err != nil {
		return nil, translateLookup(err, "Server error updating property")
	}

	s.emitAudit(ctx, audit.Event{
		ActorID:    userID.String(),
		ActorRole:  string(role),
		Action:     audit.ActionPropertyUpdated,
		TargetType: audit.TargetProperty,
		TargetID:   propertyID.String(),
	})
	return updated, nil
}

// Delete removes a listing. Only its poster and admins may delete it.
func (s *Service) Delete(ctx context.Context, propertyID id.PropertyID) error {
	userID, role := requestcontext.UserID(ctx), requestcontext.Role(ctx)

	p, err := s.store.FindByID(ctx, propertyID)
	if err != nil {
		return translateLookup(err, "Server error deleting property")
	}
	if !p.CanDelete(userID, role) {
		return dErrors.New(dErrors.CodeForbidden, "You are not authorized to delete this property")
	}
	if err := s.store.Delete(ctx, propertyID); err != nil {
		return translateLookup(err, "Server error deleting property")
	}

	s.emitAudit(ctx, audit.Event{
		ActorID:    userID.String(),
		ActorRole:  string(role),
		Action:     audit.ActionPropertyDeleted,
		TargetType: audit.TargetProperty,
		TargetID:   propertyID.String(),
	})
	return nil
}

func (s *Service) checkAgent(ctx context.Context, agentID id.UserID) error {
	agent, err := s.store.FindContact(ctx, agentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeBadRequest, "Managing agent not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Server error checking managing agent")
	}
	if agent.Role != id.RoleAgent {
		return dErrors.New(dErrors.CodeBadRequest, "managedByAgentId must reference an agent")
	}
	return nil
}

// storeMedia uploads every data-URI entry and keeps plain URLs as they are.
// Order is preserved.
func (s *Service) storeMedia(ctx context.Context, entries []string) ([]string, error) {
	out := make([]string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, entry := range entries {
		if !objectstore.IsPayload(entry) {
			out[i] = entry
			continue
		}
		g.Go(func() error {
			obj, err := s.media.Upload(gctx, entry)
			s.metrics.IncMediaUpload(err == nil)
			if err != nil {
				return err
			}
			out[i] = obj.URL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "media upload failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, translateUpload(err)
	}
	return out, nil
}

func translateUpload(err error) error {
	switch {
	case errors.Is(err, objectstore.ErrRejected):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Image upload was rejected")
	case errors.Is(err, objectstore.ErrNotConfigured):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "Media uploads are not configured")
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "Media storage is unavailable")
	}
}
