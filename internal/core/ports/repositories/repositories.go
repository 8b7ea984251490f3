package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	DocumentRepo DocumentRepositoryWithTx
	TeamRepo     TeamRepositoryFacade
	UserRepo     UserRepositoryFacade
	CompanyRepo  CompanyRepositoryFacade
	AuditRepo    AuditRepositoryFacade
	CommentRepo  CommentRepositoryFacade
}
