package settings

import (
	"context"
	"strconv"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	// GetValue returns the stored value for key, or "" when absent.
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	ListValues(ctx context.Context) (map[string]string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Float returns the setting as a float, or def when absent or unparsable.
func (s *Service) Float(ctx context.Context, key string, def float64) (float64, error) {
	raw, err := s.repo.GetValue(ctx, key)
	if err != nil {
		return 0, err
	}

	v, parseErr := strconv.ParseFloat(raw, 64)
	if raw == "" || parseErr != nil {
		return def, nil
	}

	return v, nil
}

// Int returns the setting as an int, or def when absent or unparsable.
func (s *Service) Int(ctx context.Context, key string, def int) (int, error) {
	raw, err := s.repo.GetValue(ctx, key)
	if err != nil {
		return 0, err
	}

	v, parseErr := strconv.Atoi(raw)
	if raw == "" || parseErr != nil {
		return def, nil
	}

	return v, nil
}

// Money returns the setting as an amount in đồng, or def when absent or
// unparsable.
func (s *Service) Money(ctx context.Context, key string, def int64) (int64, error) {
	raw, err := s.repo.GetValue(ctx, key)
	if err != nil {
		return 0, err
	}

	v, parseErr := strconv.ParseInt(raw, 10, 64)
	if raw == "" || parseErr != nil {
		return def, nil
	}

	return v, nil
}

func (s *Service) Set(ctx context.Context, key, value string) error {
	return s.repo.SetValue(ctx, key, value)
}

func (s *Service) All(ctx context.Context) (map[string]string, error) {
	return s.repo.ListValues(ctx)
}

// Policy materializes the current circulation policy with defaults applied.
func (s *Service) Policy(ctx context.Context) (Policy, error) {
	rate, err := s.Float(ctx, KeyFineRatePercent, DefaultFineRatePercent)
	if err != nil {
		return Policy{}, err
	}

	days, err := s.Int(ctx, KeyMaxBorrowDays, DefaultMaxBorrowDays)
	if err != nil {
		return Policy{}, err
	}

	books, err := s.Int(ctx, KeyMaxBooksPerUser, DefaultMaxBooksPerUser)
	if err != nil {
		return Policy{}, err
	}

	deposit, err := s.Money(ctx, KeyMinDepositAmount, DefaultMinDepositAmount)
	if err != nil {
		return Policy{}, err
	}

	return Policy{
		FineRatePercent:  rate,
		MaxBorrowDays:    days,
		MaxBooksPerUser:  books,
		MinDepositAmount: deposit,
	}, nil
}
