package services

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/dto"
)

// ChartReaderSvc defines read operations on the chart of accounts
type ChartReaderSvc interface {
	// Classify checks a declared nature against the PCG rules.
	Classify(ctx context.Context, accountNumber string, declared domain.Nature) domain.ClassificationResult

	// AuditChart classifies every account of a company and returns the mismatches.
	AuditChart(ctx context.Context, companyID int64) ([]domain.ClassificationIssue, error)

	// ListAccounts lists a company chart, optionally narrowed to a class or a search.
	ListAccounts(ctx context.Context, companyID int64, search domain.AccountSearch) ([]domain.Account, error)
}

// ChartWriterSvc defines write operations on the chart of accounts
type ChartWriterSvc interface {
	// CreateAccount validates, classifies and persists a new account.
	CreateAccount(ctx context.Context, companyID int64, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)
}

// ChartSvcFacade combines all chart-of-accounts service interfaces
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
