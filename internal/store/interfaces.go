package store

import "glitchterm/internal/domain"

// AccountImporter merges fetched accounts into shared state
type AccountImporter interface {
	ImportAccounts(accounts []domain.Account)
}

// AccountReader looks up previously imported accounts
type AccountReader interface {
	Account(id string) *domain.Account
	Accounts(ids []string) []*domain.Account
}

// RelationshipImporter merges fetched relationships into shared state
type RelationshipImporter interface {
	ImportRelationships(rels []domain.Relationship)
}

// RelationshipReader looks up the relationship with an account
type RelationshipReader interface {
	Relationship(id string) *domain.Relationship
}
