package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloomora/internal/domain"
	"bloomora/internal/infra"
	"bloomora/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCustomerService(t *testing.T) (*CustomerService, *mocks.MockCustomerRepository, *mocks.MockPublisher, *mocks.MockAnnouncer) {
	t.Helper()
	repo := new(mocks.MockCustomerRepository)
	publisher := new(mocks.MockPublisher)
	announcer := new(mocks.MockAnnouncer)
	s := NewCustomerService(repo, publisher, infra.ContextActorProvider{}, announcer)
	return s, repo, publisher, announcer
}

func TestCustomerService_Create(t *testing.T) {
	tests := []struct {
		name          string
		customer      domain.Customer
		setupMocks    func(*mocks.MockCustomerRepository, *mocks.MockPublisher, *mocks.MockAnnouncer)
		expectedError error
	}{
		{
			name: "successful creation",
			customer: domain.Customer{
				FullName: "Eleanor Vance",
				Phone:    "555-0101",
				Address:  "123 Rose Lane",
			},
			setupMocks: func(repo *mocks.MockCustomerRepository, pub *mocks.MockPublisher, ann *mocks.MockAnnouncer) {
				repo.On("Save", mock.AnythingOfType("*domain.Customer")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(0).(*domain.Customer).ID = "c1"
				})
				ann.On("Announce", mock.Anything, "customers").Return()
				pub.On("Publish", mock.Anything, domain.EventCustomerCreated, mock.Anything).Return(nil).Maybe()
			},
		},
		{
			name:          "missing name",
			customer:      domain.Customer{Phone: "555-0101"},
			setupMocks:    func(*mocks.MockCustomerRepository, *mocks.MockPublisher, *mocks.MockAnnouncer) {},
			expectedError: ErrMissingName,
		},
		{
			name:          "missing phone",
			customer:      domain.Customer{FullName: "Eleanor Vance"},
			setupMocks:    func(*mocks.MockCustomerRepository, *mocks.MockPublisher, *mocks.MockAnnouncer) {},
			expectedError: ErrMissingPhone,
		},
		{
			name:     "store failure surfaces",
			customer: domain.Customer{FullName: "Eleanor Vance", Phone: "555-0101"},
			setupMocks: func(repo *mocks.MockCustomerRepository, pub *mocks.MockPublisher, ann *mocks.MockAnnouncer) {
				repo.On("Save", mock.AnythingOfType("*domain.Customer")).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, publisher, announcer := newCustomerService(t)
			tt.setupMocks(repo, publisher, announcer)

			customer := tt.customer
			err := s.Create(context.Background(), &customer)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, infra.SystemActor, customer.CreatedBy)
				assert.WithinDuration(t, time.Now(), customer.CreatedAt, time.Second)
				time.Sleep(100 * time.Millisecond)
			}

			repo.AssertExpectations(t)
			publisher.AssertExpectations(t)
			announcer.AssertExpectations(t)
		})
	}
}

func TestCustomerService_Update(t *testing.T) {
	t.Run("successful update keeps creation audit", func(t *testing.T) {
		s, repo, publisher, announcer := newCustomerService(t)
		created := time.Now().AddDate(0, -1, 0)
		repo.On("FindByID", "c1").Return(&domain.Customer{
			ID:       "c1",
			FullName: "Eleanor Vance",
			Phone:    "555-0101",
			Audit:    domain.Audit{CreatedAt: created, CreatedBy: "owner@bloomora.example"},
		}, nil)
		repo.On("Update", mock.AnythingOfType("*domain.Customer")).Return(nil)
		announcer.On("Announce", mock.Anything, "customers").Return()
		publisher.On("Publish", mock.Anything, domain.EventCustomerUpdated, mock.Anything).Return(nil).Maybe()

		ctx := infra.WithActor(context.Background(), "staff@bloomora.example")
		updated, err := s.Update(ctx, "c1", domain.Customer{
			FullName: "Eleanor Vance",
			Phone:    "555-0199",
			Email:    "eleanor.v@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "555-0199", updated.Phone)
		assert.Equal(t, "owner@bloomora.example", updated.CreatedBy)
		assert.Equal(t, "staff@bloomora.example", updated.UpdatedBy)
		assert.Equal(t, created, updated.CreatedAt)
		time.Sleep(100 * time.Millisecond)
	})

	t.Run("customer not found", func(t *testing.T) {
		s, repo, _, _ := newCustomerService(t)
		repo.On("FindByID", "missing").Return(nil, nil)

		updated, err := s.Update(context.Background(), "missing", domain.Customer{FullName: "X", Phone: "1"})

		assert.Nil(t, updated)
		assert.Equal(t, ErrCustomerNotFound, err)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		s, repo, _, announcer := newCustomerService(t)
		repo.On("FindByID", "c1").Return(&domain.Customer{ID: "c1"}, nil)
		repo.On("Delete", "c1").Return(nil)
		announcer.On("Announce", mock.Anything, "customers").Return()

		assert.NoError(t, s.Delete(context.Background(), "c1"))
		repo.AssertExpectations(t)
	})

	t.Run("missing customer", func(t *testing.T) {
		s, repo, _, _ := newCustomerService(t)
		repo.On("FindByID", "missing").Return(nil, nil)

		assert.Equal(t, ErrCustomerNotFound, s.Delete(context.Background(), "missing"))
	})
}

func TestCustomerService_List(t *testing.T) {
	customers := []domain.Customer{
		{ID: "c1", FullName: "Eleanor Vance", Phone: "555-0101", Email: "eleanor.v@example.com"},
		{ID: "c2", FullName: "Marcus Holloway", Phone: "555-0102"},
	}

	s, repo, _, _ := newCustomerService(t)
	repo.On("FindAll").Return(customers, nil)

	got, err := s.List(context.Background(), "eleanor")

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}
