package usecase

import (
	"context"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

// InvestorUseCase handles investor registration and contact updates.
type InvestorUseCase struct {
	coord *Coordinator
}

// NewInvestorUseCase creates a new InvestorUseCase.
func NewInvestorUseCase(coord *Coordinator) *InvestorUseCase {
	return &InvestorUseCase{coord: coord}
}

// AddInvestorInput represents input for registering an investor.
type AddInvestorInput struct {
	JoinDate time.Time
	Name     string
	Email    string
	Phone    string
}

// AddInvestor registers a new investor with the next free ID. ID 0 stays
// reserved for the operator.
func (uc *InvestorUseCase) AddInvestor(ctx context.Context, input AddInvestorInput) (*domain.Investor, error) {
	if err := domain.ValidateInvestorName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now().UTC()
	}

	var investor *domain.Investor

	err := uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		investor = &domain.Investor{
			ID:       l.NextInvestorID(),
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			JoinDate: joinDate,
		}
		l.Investors = append(l.Investors, investor)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return investor, nil
}

// UpdateInvestorContactInput carries partial contact updates; nil fields are
// left unchanged. The ID is immutable.
type UpdateInvestorContactInput struct {
	Name  *string
	Email *string
	Phone *string
}

// UpdateInvestorContact updates an investor's mutable contact fields.
func (uc *InvestorUseCase) UpdateInvestorContact(ctx context.Context, investorID int64, input UpdateInvestorContactInput) (*domain.Investor, error) {
	if input.Name != nil {
		if err := domain.ValidateInvestorName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := domain.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	var investor *domain.Investor

	err := uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		inv, err := l.FindInvestor(investorID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			inv.Name = *input.Name
		}
		if input.Email != nil {
			inv.Email = *input.Email
		}
		if input.Phone != nil {
			inv.Phone = *input.Phone
		}

		investor = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return investor, nil
}

// GetInvestor retrieves an investor by ID.
func (uc *InvestorUseCase) GetInvestor(ctx context.Context, investorID int64) (*domain.Investor, error) {
	var investor *domain.Investor

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		inv, err := l.FindInvestor(investorID)
		if err != nil {
			return err
		}
		investor = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return investor, nil
}

// ListInvestors lists investors. The operator is excluded unless
// includeOperator is set; it is not a regular investor for reporting.
func (uc *InvestorUseCase) ListInvestors(ctx context.Context, includeOperator bool) ([]*domain.Investor, error) {
	var out []*domain.Investor

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		for _, inv := range l.Investors {
			if inv.IsOperator && !includeOperator {
				continue
			}
			out = append(out, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
