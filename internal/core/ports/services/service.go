package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
// It is the only mutation path into the ledger.
type ServiceContainer struct {
	Business     BusinessSvcFacade
	Counterparty CounterpartySvcFacade
	Transaction  TransactionSvcFacade
	Analytics    AnalyticsSvcFacade
	Export       ExportSvc
}
