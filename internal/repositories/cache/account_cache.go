// Package cache holds in-process read-through decorators over repositories.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	gocache "github.com/patrickmn/go-cache"
)

// CachedAccountRepository serves account lookups from memory. Accounts are
// immutable once created, so entries only expire by TTL.
type CachedAccountRepository struct {
	inner portsrepo.AccountRepositoryFacade
	store *gocache.Cache
}

var _ portsrepo.AccountRepositoryFacade = (*CachedAccountRepository)(nil)

// NewCachedAccountRepository wraps inner with a cache whose entries live for ttl.
func NewCachedAccountRepository(inner portsrepo.AccountRepositoryFacade, ttl time.Duration) *CachedAccountRepository {
	return &CachedAccountRepository{
		inner: inner,
		store: gocache.New(ttl, 2*ttl),
	}
}

func idKey(accountID int64) string {
	return fmt.Sprintf("id:%d", accountID)
}

func numberKey(companyID int64, number string) string {
	return fmt.Sprintf("number:%d:%s", companyID, number)
}

func (c *CachedAccountRepository) remember(account domain.Account) {
	c.store.SetDefault(idKey(account.AccountID), account)
	c.store.SetDefault(numberKey(account.CompanyID, account.Number), account)
}

func (c *CachedAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	if v, ok := c.store.Get(idKey(accountID)); ok {
		account := v.(domain.Account)
		return &account, nil
	}
	account, err := c.inner.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	c.remember(*account)
	return account, nil
}

func (c *CachedAccountRepository) FindAccountByNumber(ctx context.Context, companyID int64, number string) (*domain.Account, error) {
	if v, ok := c.store.Get(numberKey(companyID, number)); ok {
		account := v.(domain.Account)
		return &account, nil
	}
	account, err := c.inner.FindAccountByNumber(ctx, companyID, number)
	if err != nil {
		return nil, err
	}
	c.remember(*account)
	return account, nil
}

func (c *CachedAccountRepository) ListAccounts(ctx context.Context, companyID int64) ([]domain.Account, error) {
	return c.inner.ListAccounts(ctx, companyID)
}

// SearchAccounts goes to the inner repository and remembers what it returns,
// so the entries booked right after a lookup hit the cache.
func (c *CachedAccountRepository) SearchAccounts(ctx context.Context, companyID int64, search domain.AccountSearch) ([]domain.Account, error) {
	accounts, err := c.inner.SearchAccounts(ctx, companyID, search)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		c.remember(a)
	}
	return accounts, nil
}

func (c *CachedAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	id, err := c.inner.SaveAccount(ctx, account)
	if err != nil {
		return 0, err
	}
	account.AccountID = id
	c.remember(account)
	return id, nil
}
