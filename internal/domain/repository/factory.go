package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Catalog() CatalogRepository
	Orders() OrderRepository
	Volunteers() VolunteerRepository
	VolunteerBalances() VolunteerBalanceRepository
	Wallets() WalletRepository
}
