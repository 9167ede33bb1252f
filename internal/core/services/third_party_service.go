package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
)

// thirdPartyService implements the ThirdPartySvcFacade interface
type thirdPartyService struct {
	BaseService
	thirdPartyRepo portsrepo.ThirdPartyRepositoryFacade
}

// ThirdPartyServiceOption is a functional option for configuring the third-party service
type ThirdPartyServiceOption func(*thirdPartyService)

// WithThirdPartyAuditRecorder sets the audit recorder of the third-party service.
func WithThirdPartyAuditRecorder(recorder portssvc.AuditRecorder) ThirdPartyServiceOption {
	return func(s *thirdPartyService) {
		s.Audit = recorder
	}
}

// NewThirdPartyService creates a new service for customers and suppliers.
func NewThirdPartyService(thirdPartyRepo portsrepo.ThirdPartyRepositoryFacade, options ...ThirdPartyServiceOption) portssvc.ThirdPartySvcFacade {
	svc := &thirdPartyService{thirdPartyRepo: thirdPartyRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ThirdPartySvcFacade = (*thirdPartyService)(nil)

func (s *thirdPartyService) ListThirdParties(ctx context.Context, companyID int64, kind domain.ThirdPartyKind) ([]domain.ThirdParty, error) {
	if kind != "" && !kind.IsValid() {
		return nil, apperrors.NewValidationError("unknown third party kind %q", kind)
	}
	list, err := s.thirdPartyRepo.ListThirdParties(ctx, companyID, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list third parties", slog.Int64("company_id", companyID))
		return nil, fmt.Errorf("failed to list third parties of company %d: %w", companyID, err)
	}
	return list, nil
}

// GetThirdParty hides third parties of other companies behind a not found.
func (s *thirdPartyService) GetThirdParty(ctx context.Context, companyID, thirdPartyID int64) (*domain.ThirdParty, error) {
	tp, err := s.thirdPartyRepo.FindThirdPartyByID(ctx, thirdPartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("third party %d not found", thirdPartyID)
		}
		return nil, fmt.Errorf("failed to load third party %d: %w", thirdPartyID, err)
	}
	if tp.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError("third party %d not found for company %d", thirdPartyID, companyID)
	}
	return tp, nil
}

func (s *thirdPartyService) CreateThirdParty(ctx context.Context, companyID int64, req dto.CreateThirdPartyRequest, actor domain.Actor) (tp *domain.ThirdParty, err error) {
	defer s.recoverOperation(ctx, "create third party", &err)

	if err := s.AuthorizeWrite(ctx, actor, "third_party.create"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "third_party.create", companyID, map[string]any{
		"code": req.Code,
		"kind": req.Kind,
	})

	created := domain.ThirdParty{
		CompanyID: companyID,
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		Kind:      req.Kind,
	}
	if err := validateThirdParty(created); err != nil {
		return nil, err
	}

	id, err := s.thirdPartyRepo.SaveThirdParty(ctx, created)
	if err != nil {
		s.LogError(ctx, err, "Failed to save third party",
			slog.Int64("company_id", companyID),
			slog.String("code", created.Code))
		return nil, fmt.Errorf("failed to save third party %s: %w", created.Code, err)
	}
	created.ThirdPartyID = id

	s.LogInfo(ctx, "Third party created",
		slog.Int64("third_party_id", id),
		slog.String("code", created.Code),
		slog.String("kind", string(created.Kind)))
	return &created, nil
}

func (s *thirdPartyService) UpdateThirdParty(ctx context.Context, companyID, thirdPartyID int64, req dto.UpdateThirdPartyRequest, actor domain.Actor) (tp *domain.ThirdParty, err error) {
	defer s.recoverOperation(ctx, "update third party", &err)

	if err := s.AuthorizeWrite(ctx, actor, "third_party.update"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "third_party.update", companyID, map[string]any{
		"third_party_id": thirdPartyID,
		"kind":           req.Kind,
	})

	tp, err = s.GetThirdParty(ctx, companyID, thirdPartyID)
	if err != nil {
		return nil, err
	}
	tp.Name = strings.TrimSpace(req.Name)
	tp.Kind = req.Kind
	if err := validateThirdParty(*tp); err != nil {
		return nil, err
	}

	if err := s.thirdPartyRepo.UpdateThirdParty(ctx, *tp); err != nil {
		s.LogError(ctx, err, "Failed to update third party", slog.Int64("third_party_id", thirdPartyID))
		return nil, fmt.Errorf("failed to update third party %d: %w", thirdPartyID, err)
	}

	s.LogInfo(ctx, "Third party updated", slog.Int64("third_party_id", thirdPartyID))
	return tp, nil
}

// DeleteThirdParty refuses a third party any movement points at.
func (s *thirdPartyService) DeleteThirdParty(ctx context.Context, companyID, thirdPartyID int64, actor domain.Actor) (err error) {
	defer s.recoverOperation(ctx, "delete third party", &err)

	if err := s.AuthorizeWrite(ctx, actor, "third_party.delete"); err != nil {
		return err
	}
	s.RecordAudit(ctx, actor, "third_party.delete", companyID, map[string]any{"third_party_id": thirdPartyID})

	if _, err := s.GetThirdParty(ctx, companyID, thirdPartyID); err != nil {
		return err
	}
	if err := s.thirdPartyRepo.DeleteThirdParty(ctx, thirdPartyID); err != nil {
		s.LogError(ctx, err, "Failed to delete third party", slog.Int64("third_party_id", thirdPartyID))
		return fmt.Errorf("failed to delete third party %d: %w", thirdPartyID, err)
	}

	s.LogInfo(ctx, "Third party deleted", slog.Int64("third_party_id", thirdPartyID))
	return nil
}

func validateThirdParty(tp domain.ThirdParty) error {
	switch {
	case tp.Code == "":
		return apperrors.NewValidationError("third party code is required")
	case len(tp.Code) > 20:
		return apperrors.NewValidationError("third party code %q exceeds 20 characters", tp.Code)
	case tp.Name == "":
		return apperrors.NewValidationError("third party name is required")
	case !tp.Kind.IsValid():
		return apperrors.NewValidationError("unknown third party kind %q", tp.Kind)
	}
	return nil
}
