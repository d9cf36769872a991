package test

import (
	"context"
	"net/http"

	"github.com/ticketline/ticketline/internal/domain/repository"
	"github.com/ticketline/ticketline/internal/identity"
)

// UnitOfWorkStub satisfies repository.UnitOfWork for graph composition
// tests. Execute fails loudly when a test reaches the database by accident.
type UnitOfWorkStub struct {
	ExecuteFn func(context.Context, func(repository.Repositories) error) error
}

func (s *UnitOfWorkStub) Execute(ctx context.Context, fn func(repository.Repositories) error) error {
	if s.ExecuteFn != nil {
		return s.ExecuteFn(ctx, fn)
	}
	panic("unit of work executed without ExecuteFn")
}

// IdentityProviderStub resolves every request to a fixed identity.
type IdentityProviderStub struct {
	Identity identity.Identity
	Err      error
}

func (s *IdentityProviderStub) Resolve(*http.Request) (identity.Identity, error) {
	if s.Err != nil {
		return identity.Identity{}, s.Err
	}
	return s.Identity, nil
}
