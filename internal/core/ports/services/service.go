package services

// ServiceContainer bundles every service facade for injection into the
// handler layer.
type ServiceContainer struct {
	User          UserSvcFacade
	Team          TeamSvcFacade
	Document      DocumentSvcFacade
	Workflow      WorkflowSvcFacade
	Permission    PermissionSvcFacade
	Assignment    AssignmentSvcFacade
	ArchiveNumber ArchiveNumberSvcFacade
}
