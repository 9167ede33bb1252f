package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers and commands.
type ServiceContainer struct {
	Company        CompanyService
	ThirdParty     ThirdPartySvcFacade
	Chart          ChartSvcFacade
	Entry          EntrySvcFacade
	Reconciliation ReconciliationService
	Reporting      ReportingService
	Closing        ClosingService
}
