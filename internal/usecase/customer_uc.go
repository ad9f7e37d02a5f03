package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/phenrril/repairshop/internal/domain"
)

type CustomerUC struct {
	Customers domain.CustomerRepo
	Jobs      domain.RepairJobRepo
}

var digitsRe = regexp.MustCompile(`^[\d\s+()-]+$`)

// CreateOrGet looks the customer up by phone and returns the existing id
// without reconciling any other fields; only a first sighting of the phone
// number creates a row. A duplicate-key error from a concurrent insert is
// resolved by looking the winner up again.
func (uc *CustomerUC) CreateOrGet(ctx context.Context, c domain.Customer) (uuid.UUID, error) {
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Phone == "" {
		return uuid.Nil, errors.New("phone required")
	}
	existing, err := uc.Customers.FindByPhone(ctx, c.Phone)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, err
	}
	if err := uc.Customers.Create(ctx, &c); err != nil {
		if errors.Is(err, domain.ErrDuplicatePhone) {
			winner, ferr := uc.Customers.FindByPhone(ctx, c.Phone)
			if ferr != nil {
				return uuid.Nil, ferr
			}
			return winner.ID, nil
		}
		return uuid.Nil, err
	}
	return c.ID, nil
}

// Search resolves a free-form term (phone if it looks like one, name
// otherwise) to a customer and their repair history.
func (uc *CustomerUC) Search(ctx context.Context, term string) (*domain.Customer, []domain.RepairJob, error) {
	t := strings.TrimSpace(term)
	if t == "" {
		return nil, nil, errors.New("empty search term")
	}
	var (
		c   *domain.Customer
		err error
	)
	if digitsRe.MatchString(t) {
		c, err = uc.Customers.FindByPhone(ctx, t)
	} else {
		c, err = uc.Customers.FindByName(ctx, t)
	}
	if err != nil {
		return nil, nil, err
	}
	history, err := uc.Jobs.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, nil, err
	}
	return c, history, nil
}

func (uc *CustomerUC) History(ctx context.Context, customerID uuid.UUID) ([]domain.RepairJob, error) {
	if customerID == uuid.Nil {
		return nil, errors.New("customer id required")
	}
	return uc.Jobs.ListByCustomer(ctx, customerID)
}
