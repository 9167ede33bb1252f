package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
)

// chartService implements the ChartSvcFacade interface
type chartService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	classifier  *accounting.Classifier
}

// ChartServiceOption is a functional option for configuring the chart service
type ChartServiceOption func(*chartService)

// WithChartAuditRecorder sets the audit recorder of the chart service.
func WithChartAuditRecorder(recorder portssvc.AuditRecorder) ChartServiceOption {
	return func(s *chartService) {
		s.Audit = recorder
	}
}

// WithClassifier replaces the PCG classifier.
func WithClassifier(classifier *accounting.Classifier) ChartServiceOption {
	return func(s *chartService) {
		s.classifier = classifier
	}
}

// NewChartService creates a new chart-of-accounts service.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade, options ...ChartServiceOption) portssvc.ChartSvcFacade {
	svc := &chartService{
		accountRepo: accountRepo,
		classifier:  accounting.NewClassifier(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// Classify checks a declared nature against the PCG rules. It never fails:
// the verdict and its message are in the result.
func (s *chartService) Classify(ctx context.Context, accountNumber string, declared domain.Nature) domain.ClassificationResult {
	res := s.classifier.Classify(accountNumber, declared)
	s.LogDebug(ctx, "Account classified",
		slog.String("account_number", accountNumber),
		slog.String("declared", string(declared)),
		slog.Bool("valid", res.Valid))
	return res
}

// CreateAccount adds an account to a company chart once its nature passes classification.
func (s *chartService) CreateAccount(ctx context.Context, companyID int64, req dto.CreateAccountRequest, actor domain.Actor) (account *domain.Account, err error) {
	defer s.recoverOperation(ctx, "create account", &err)

	if err := s.AuthorizeWrite(ctx, actor, "account.create"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "account.create", companyID, map[string]any{
		"number": req.Number,
		"nature": req.Nature,
	})

	if err := accounting.ValidateAccountNumber(req.Number); err != nil {
		return nil, err
	}
	res := s.classifier.Classify(req.Number, req.Nature)
	if !res.Valid {
		return nil, apperrors.NewClassificationError("%s", res.Message)
	}

	existing, err := s.accountRepo.FindAccountByNumber(ctx, companyID, req.Number)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for an existing account",
			slog.Int64("company_id", companyID),
			slog.String("account_number", req.Number))
		return nil, fmt.Errorf("failed to check account %s: %w", req.Number, err)
	}
	if existing != nil {
		return nil, apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("account %s already exists", req.Number), apperrors.ErrDuplicate)
	}

	now := time.Now().UTC()
	newAccount := domain.Account{
		CompanyID:    companyID,
		Number:       req.Number,
		Label:        req.Label,
		Nature:       req.Nature,
		Reconcilable: req.Reconcilable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	id, err := s.accountRepo.SaveAccount(ctx, newAccount)
	if err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.Int64("company_id", companyID),
			slog.String("account_number", req.Number))
		return nil, fmt.Errorf("failed to save account %s: %w", req.Number, err)
	}
	newAccount.AccountID = id

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", id),
		slog.String("account_number", req.Number),
		slog.String("nature", string(req.Nature)))
	return &newAccount, nil
}

// ListAccounts lists the chart of a company, narrowed by search.
func (s *chartService) ListAccounts(ctx context.Context, companyID int64, search domain.AccountSearch) ([]domain.Account, error) {
	search.Class = strings.TrimSpace(search.Class)
	search.Query = strings.TrimSpace(search.Query)
	if search.Class != "" && (len(search.Class) != 1 || search.Class < "1" || search.Class > "7") {
		return nil, apperrors.NewValidationError("account class %q must be a digit from 1 to 7", search.Class)
	}
	accounts, err := s.accountRepo.SearchAccounts(ctx, companyID, search)
	if err != nil {
		s.LogError(ctx, err, "Failed to search accounts",
			slog.Int64("company_id", companyID),
			slog.String("class", search.Class),
			slog.String("query", search.Query))
		return nil, fmt.Errorf("failed to list accounts of company %d: %w", companyID, err)
	}
	return accounts, nil
}

// AuditChart classifies every account of a company and returns those that fail.
func (s *chartService) AuditChart(ctx context.Context, companyID int64) ([]domain.ClassificationIssue, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int64("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts of company %d: %w", companyID, err)
	}

	issues := make([]domain.ClassificationIssue, 0)
	for _, a := range accounts {
		res := s.classifier.Classify(a.Number, a.Nature)
		if res.Valid {
			continue
		}
		if res.Expected == "" {
			// A nature outside the class still has a pinned one to suggest.
			res.Expected, _ = s.classifier.ExpectedNature(a.Number)
		}
		issues = append(issues, domain.ClassificationIssue{
			AccountID: a.AccountID,
			Number:    a.Number,
			Label:     a.Label,
			Declared:  a.Nature,
			Expected:  res.Expected,
			Message:   res.Message,
		})
	}

	s.LogInfo(ctx, "Chart audited",
		slog.Int64("company_id", companyID),
		slog.Int("account_count", len(accounts)),
		slog.Int("issue_count", len(issues)))
	return issues, nil
}
