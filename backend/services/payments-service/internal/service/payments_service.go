package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evzone/backend/libs/request"
	"evzone/backend/services/payments-service/internal/models"
)

// Defaults applied to new payment intents.
const (
	DefaultCurrency     = "USD"
	DefaultProvider     = "manual"
	IntentStatusCreated = "created"
)

// ErrMissingUser is returned when an intent is created without an authenticated user.
var ErrMissingUser = errors.New("payments: user id required")

// InvoiceRepository defines invoice storage used by the service.
type InvoiceRepository interface {
	List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Invoice, error)
	Count(ctx context.Context, filter models.ListFilter) (int, error)
}

// TransactionRepository defines transaction storage used by the service.
type TransactionRepository interface {
	List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Transaction, error)
	Count(ctx context.Context, filter models.ListFilter) (int, error)
}

// IntentRepository persists payment intents.
type IntentRepository interface {
	Create(ctx context.Context, intent *models.PaymentIntent) error
}

var newID = func() string { return uuid.NewString() }

// ListInput carries the validated listing parameters.
type ListInput struct {
	UserID string `query:"userId" validate:"max=64"`
	Status string `query:"status" validate:"max=32"`
	request.Pagination
}

func (in ListInput) filter() models.ListFilter {
	return models.ListFilter{UserID: in.UserID, Status: in.Status}
}

// CreateIntentInput is the POST /payments/intent body.
type CreateIntentInput struct {
	Amount   *float64 `json:"amount" validate:"required,gt=0"`
	Currency string   `json:"currency" validate:"omitempty,len=3,alpha"`
	Provider string   `json:"provider" validate:"omitempty,max=64"`
}

// PaymentsService lists invoices and transactions and records payment intents.
type PaymentsService struct {
	invoices     InvoiceRepository
	transactions TransactionRepository
	intents      IntentRepository
	logger       *zap.Logger
}

// NewPaymentsService builds service.
func NewPaymentsService(invoices InvoiceRepository, transactions TransactionRepository, intents IntentRepository, logger *zap.Logger) *PaymentsService {
	return &PaymentsService{
		invoices:     invoices,
		transactions: transactions,
		intents:      intents,
		logger:       logger,
	}
}

// ListInvoices returns a page of invoices with the filter's total.
func (s *PaymentsService) ListInvoices(ctx context.Context, input ListInput) (request.Page[models.Invoice], error) {
	if err := request.Validate(input); err != nil {
		return request.Page[models.Invoice]{}, err
	}
	items, err := s.invoices.List(ctx, input.filter(), input.Pagination)
	if err != nil {
		return request.Page[models.Invoice]{}, err
	}
	total, err := s.invoices.Count(ctx, input.filter())
	if err != nil {
		return request.Page[models.Invoice]{}, err
	}
	return request.NewPage(items, input.Pagination, total), nil
}

// ListTransactions returns a page of transactions with the filter's total.
func (s *PaymentsService) ListTransactions(ctx context.Context, input ListInput) (request.Page[models.Transaction], error) {
	if err := request.Validate(input); err != nil {
		return request.Page[models.Transaction]{}, err
	}
	items, err := s.transactions.List(ctx, input.filter(), input.Pagination)
	if err != nil {
		return request.Page[models.Transaction]{}, err
	}
	total, err := s.transactions.Count(ctx, input.filter())
	if err != nil {
		return request.Page[models.Transaction]{}, err
	}
	return request.NewPage(items, input.Pagination, total), nil
}

// CreateIntent stores a new intent for userID, filling currency and provider defaults.
func (s *PaymentsService) CreateIntent(ctx context.Context, userID string, input CreateIntentInput) (*models.PaymentIntent, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	if err := request.Validate(input); err != nil {
		return nil, err
	}

	intent := &models.PaymentIntent{
		ID:       newID(),
		UserID:   userID,
		Amount:   *input.Amount,
		Currency: strings.ToUpper(input.Currency),
		Provider: input.Provider,
		Status:   IntentStatusCreated,
	}
	if intent.Currency == "" {
		intent.Currency = DefaultCurrency
	}
	if intent.Provider == "" {
		intent.Provider = DefaultProvider
	}

	if err := s.intents.Create(ctx, intent); err != nil {
		return nil, fmt.Errorf("payments: create intent: %w", err)
	}

	s.logger.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("user_id", userID),
		zap.Float64("amount", intent.Amount),
		zap.String("currency", intent.Currency),
	)
	return intent, nil
}
