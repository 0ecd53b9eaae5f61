package mysql

import (
	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/domain"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/account"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/accounttype"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/card"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/domain/user"
)

// RepositorySet binds one repository per aggregate to a single database
// handle. Built once on the pooled handle for plain reads, and once per
// Unit-of-Work scope on the scope's transaction so every repository in the
// set shares that transaction.
type RepositorySet struct {
	users        *UserRepository
	institutions *InstitutionRepository
	accountTypes *AccountTypeRepository
	accounts     *AccountRepository
	cards        *CardRepository
}

func NewRepositorySet(db *gorm.DB) *RepositorySet {
	return &RepositorySet{
		users:        NewUserRepository(db),
		institutions: NewInstitutionRepository(db),
		accountTypes: NewAccountTypeRepository(db),
		accounts:     NewAccountRepository(db),
		cards:        NewCardRepository(db),
	}
}

func (s *RepositorySet) Users() user.Repository                { return s.users }
func (s *RepositorySet) Institutions() institution.Repository  { return s.institutions }
func (s *RepositorySet) AccountTypes() accounttype.Repository  { return s.accountTypes }
func (s *RepositorySet) Accounts() account.Repository          { return s.accounts }
func (s *RepositorySet) Cards() card.Repository                { return s.cards }

var _ domain.Repositories = (*RepositorySet)(nil)
