package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reconciliationService implements the ReconciliationService interface.
// Writes on one account are serialized. Code uniqueness is held by the
// ledger repository.
type reconciliationService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountReader
	tolerance    decimal.Decimal
	accountLocks *keyedMutex
}

// ReconciliationServiceOption is a functional option for configuring the reconciliation service
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationTolerance sets the zero-sum tolerance.
func WithReconciliationTolerance(tolerance decimal.Decimal) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.tolerance = tolerance
	}
}

// WithReconciliationAuditRecorder sets the audit recorder of the reconciliation service.
func WithReconciliationAuditRecorder(recorder portssvc.AuditRecorder) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.Audit = recorder
	}
}

// NewReconciliationService creates a new lettrage service.
func NewReconciliationService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader, options ...ReconciliationServiceOption) portssvc.ReconciliationService {
	svc := &reconciliationService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		tolerance:    accounting.DefaultTolerance,
		accountLocks: newKeyedMutex(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationService = (*reconciliationService)(nil)

// Reconcile assigns one code to a set of movements of a single account whose
// soldes net to zero within tolerance.
func (s *reconciliationService) Reconcile(ctx context.Context, movementIDs []int64, code string, actor domain.Actor) (result *domain.ReconciliationResult, err error) {
	defer s.recoverOperation(ctx, "reconcile", &err)

	if err := s.AuthorizeWrite(ctx, actor, "reconciliation.manual"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "reconciliation.manual", 0, map[string]any{
		"movement_ids": movementIDs,
		"code":         code,
	})

	ids := distinctIDs(movementIDs)
	if len(ids) < 2 {
		return nil, apperrors.NewReconciliationError("at least 2 movements are required to reconcile, got %d", len(ids))
	}
	if code != "" && !accounting.IsReconciliationCode(code) {
		return nil, apperrors.NewValidationError("reconciliation code %q must be two uppercase letters", code)
	}

	agg, err := s.ledgerRepo.AggregateMovements(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate movements", slog.Any("movement_ids", ids))
		return nil, fmt.Errorf("failed to aggregate movements: %w", err)
	}
	if agg.Count < len(ids) {
		return nil, apperrors.NewNotFoundError("%d of %d movements not found", len(ids)-agg.Count, len(ids))
	}
	if len(agg.AccountIDs) != 1 {
		return nil, apperrors.NewReconciliationError("movements span %d accounts, a reconciliation group must stay on one account", len(agg.AccountIDs))
	}
	if !accounting.WithinTolerance(agg.Solde, s.tolerance) {
		return nil, apperrors.NewReconciliationError("balance off by %s (debit %s, credit %s)",
			agg.Solde.Abs().StringFixed(2), agg.TotalDebit.StringFixed(2), agg.TotalCredit.StringFixed(2))
	}

	accountID := agg.AccountIDs[0]
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", accountID, err)
	}
	if !account.Reconcilable {
		return nil, apperrors.NewReconciliationError("account %s is not reconcilable", account.Number)
	}

	unlock := s.accountLocks.Lock(strconv.FormatInt(accountID, 10))
	defer unlock()

	applied, err := s.apply(ctx, ids, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply reconciliation code",
			slog.Int64("account_id", accountID),
			slog.Any("movement_ids", ids))
		return nil, err
	}

	s.LogInfo(ctx, "Movements reconciled",
		slog.String("code", applied),
		slog.Int64("account_id", accountID),
		slog.Int("movement_count", len(ids)))
	return &domain.ReconciliationResult{
		Code:        applied,
		MovementIDs: ids,
		Solde:       agg.Solde,
		Message:     fmt.Sprintf("%d movements reconciled under code %s", len(ids), applied),
	}, nil
}

// AutoReconcile pairs unreconciled movements of an account greedily: each
// movement, in entry order, is matched with the first later movement that
// cancels it within tolerance. Only pairs are formed. A pair reconciled
// concurrently is skipped; any other failure stops the run and the result
// still reports the pairs done so far.
func (s *reconciliationService) AutoReconcile(ctx context.Context, scope domain.ReconciliationScope, actor domain.Actor) (result *domain.AutoReconciliationResult, err error) {
	defer s.recoverOperation(ctx, "auto reconcile", &err)

	if err := s.AuthorizeWrite(ctx, actor, "reconciliation.auto"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "reconciliation.auto", scope.CompanyID, map[string]any{
		"fiscal_year_id": scope.FiscalYearID,
		"account_number": scope.AccountNumber,
		"third_party_id": scope.ThirdPartyID,
	})

	account, err := s.accountRepo.FindAccountByNumber(ctx, scope.CompanyID, scope.AccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account %s not found", scope.AccountNumber)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", scope.AccountNumber, err)
	}
	if !account.Reconcilable {
		return nil, apperrors.NewReconciliationError("account %s is not reconcilable", account.Number)
	}

	unlock := s.accountLocks.Lock(strconv.FormatInt(account.AccountID, 10))
	defer unlock()

	open, err := s.ledgerRepo.FindUnreconciledMovements(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unreconciled movements", slog.String("account_number", scope.AccountNumber))
		return nil, fmt.Errorf("failed to list unreconciled movements: %w", err)
	}

	result = &domain.AutoReconciliationResult{Codes: []string{}}
	pending := slices.Clone(open)
	for i := 0; i < len(pending); {
		j := s.findPartner(pending, i)
		if j < 0 {
			i++
			continue
		}
		pair := []int64{pending[i].MovementID, pending[j].MovementID}
		code, err := s.apply(ctx, pair, "")
		if err != nil && !errors.Is(err, apperrors.ErrConflict) {
			result.Message = fmt.Sprintf("%d reconciliation(s) performed before failure", result.Pairs)
			s.LogError(ctx, err, "Auto reconciliation stopped",
				slog.String("account_number", scope.AccountNumber),
				slog.Int("pairs", result.Pairs))
			return result, fmt.Errorf("auto reconciliation stopped after %d pair(s): %w", result.Pairs, err)
		}
		if err != nil {
			s.LogDebug(ctx, "Pair reconciled concurrently, skipped", slog.Any("movement_ids", pair))
		} else {
			result.Pairs++
			result.Codes = append(result.Codes, code)
		}
		// j > i, so removing j first keeps i in place.
		pending = slices.Delete(pending, j, j+1)
		pending = slices.Delete(pending, i, i+1)
	}
	result.Message = fmt.Sprintf("%d reconciliation(s) performed", result.Pairs)

	s.LogInfo(ctx, "Auto reconciliation completed",
		slog.String("account_number", scope.AccountNumber),
		slog.Int("candidates", len(open)),
		slog.Int("pairs", result.Pairs))
	return result, nil
}

// Unreconcile clears a code from every movement carrying it.
func (s *reconciliationService) Unreconcile(ctx context.Context, code string, actor domain.Actor) (result *domain.UnreconciliationResult, err error) {
	defer s.recoverOperation(ctx, "unreconcile", &err)

	if err := s.AuthorizeWrite(ctx, actor, "reconciliation.undo"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "reconciliation.undo", 0, map[string]any{"code": code})

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewValidationError("reconciliation code is required")
	}

	cleared, err := s.ledgerRepo.ClearReconciliationCode(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear reconciliation code", slog.String("code", code))
		return nil, fmt.Errorf("failed to clear reconciliation code %s: %w", code, err)
	}

	s.LogInfo(ctx, "Reconciliation code cleared", slog.String("code", code), slog.Int64("cleared", cleared))
	return &domain.UnreconciliationResult{
		Code:    code,
		Cleared: cleared,
		Message: fmt.Sprintf("%d movement(s) unreconciled", cleared),
	}, nil
}

// ListUnreconciled returns the open movements in scope.
func (s *reconciliationService) ListUnreconciled(ctx context.Context, scope domain.ReconciliationScope) ([]domain.LedgerLine, error) {
	lines, err := s.ledgerRepo.FindUnreconciledMovements(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unreconciled movements", slog.String("account_number", scope.AccountNumber))
		return nil, fmt.Errorf("failed to list unreconciled movements: %w", err)
	}
	for i := range lines {
		lines[i].Solde = lines[i].Debit.Sub(lines[i].Credit)
	}
	return lines, nil
}

// ListGroups returns the reconciled movements of an account grouped by code.
func (s *reconciliationService) ListGroups(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.ReconciliationGroup, error) {
	lines, err := s.ledgerRepo.FindReconciledMovements(ctx, companyID, fiscalYearID, accountNumber)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reconciled movements", slog.String("account_number", accountNumber))
		return nil, fmt.Errorf("failed to list reconciled movements: %w", err)
	}

	groups := make([]domain.ReconciliationGroup, 0)
	for _, l := range lines {
		l.Solde = l.Debit.Sub(l.Credit)
		if n := len(groups); n == 0 || groups[n-1].Code != l.ReconciliationCode {
			groups = append(groups, domain.ReconciliationGroup{
				Code:        l.ReconciliationCode,
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
			})
		}
		g := &groups[len(groups)-1]
		g.Movements = append(g.Movements, l)
		g.TotalDebit = g.TotalDebit.Add(l.Debit)
		g.TotalCredit = g.TotalCredit.Add(l.Credit)
	}
	return groups, nil
}

// allocationAttempts bounds the retries of an allocation that lost its code.
const allocationAttempts = 3

// apply stores code on ids, allocating the next code when code is empty.
func (s *reconciliationService) apply(ctx context.Context, ids []int64, code string) (string, error) {
	if code != "" {
		if _, err := s.ledgerRepo.ApplyReconciliationCode(ctx, ids, code); err != nil {
			return "", fmt.Errorf("failed to apply reconciliation code %s: %w", code, err)
		}
		return code, nil
	}

	var err error
	for attempt := 1; attempt <= allocationAttempts; attempt++ {
		var next string
		next, err = s.ledgerRepo.AllocateReconciliationCode(ctx, ids)
		switch {
		case err == nil:
			return next, nil
		case errors.Is(err, accounting.ErrCodeSpaceExhausted):
			appErr := apperrors.NewReconciliationError("no reconciliation code left, supply one explicitly")
			appErr.Err = err
			return "", appErr
		case errors.Is(err, apperrors.ErrCodeInUse):
			s.LogDebug(ctx, "Allocated code taken concurrently, retrying", slog.Int("attempt", attempt))
			continue
		}
		break
	}
	return "", fmt.Errorf("failed to allocate a reconciliation code: %w", err)
}

// findPartner returns the index of the first movement after i cancelling it, or -1.
func (s *reconciliationService) findPartner(lines []domain.LedgerLine, i int) int {
	si := lines[i].Debit.Sub(lines[i].Credit)
	for j := i + 1; j < len(lines); j++ {
		sj := lines[j].Debit.Sub(lines[j].Credit)
		if accounting.WithinTolerance(si.Add(sj), s.tolerance) {
			return j
		}
	}
	return -1
}

func distinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
