package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	VerificationService VerificationService
	MatchingService     MatchingService
	GigService          GigService
	ApplicationService  ApplicationService
	ContractService     ContractService
	ReviewService       ReviewService
	AdminService        AdminService
}
