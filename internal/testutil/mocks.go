package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/fintrackhq/fintrack-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users   map[int32]*domain.User
	ByEmail map[string]*domain.User
	NextID  int32
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:   make(map[int32]*domain.User),
		ByEmail: make(map[string]*domain.User),
		NextID:  1,
	}
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	user.ID = m.NextID
	m.NextID++
	user.CreatedAt = time.Now()
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int32) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. Ids are allocated per user as max+1,
// matching the real store.
type MockTransactionRepository struct {
	Transactions map[int32][]*domain.Transaction
	CreateErr    error
	mu           sync.Mutex
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32][]*domain.Transaction),
	}
}

// Create inserts a transaction with the next unused id for the user
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var maxID int32
	for _, t := range m.Transactions[transaction.UserID] {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	transaction.ID = maxID + 1
	transaction.CreatedAt = time.Now()
	m.Transactions[transaction.UserID] = append(m.Transactions[transaction.UserID], transaction)
	return transaction, nil
}

// GetByUser retrieves all transactions for a user, newest first
func (m *MockTransactionRepository) GetByUser(userID int32) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Transaction, len(m.Transactions[userID]))
	copy(result, m.Transactions[userID])
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// GetByUserAndMonth retrieves a user's transactions dated in one calendar month
func (m *MockTransactionRepository) GetByUserAndMonth(userID int32, month time.Month, year int) ([]*domain.Transaction, error) {
	all, err := m.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	var result []*domain.Transaction
	for _, t := range all {
		if t.InMonth(month, year) {
			result = append(result, t)
		}
	}
	return result, nil
}

// Delete removes a transaction when both id and owner match
func (m *MockTransactionRepository) Delete(id, userID int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	transactions := m.Transactions[userID]
	for i, t := range transactions {
		if t.ID == id {
			m.Transactions[userID] = append(transactions[:i], transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int32][]*domain.Budget
	mu      sync.Mutex
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32][]*domain.Budget),
	}
}

// Upsert creates a budget or updates the amount of the existing
// (user, category) row
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.Budgets[budget.UserID] {
		if b.Category == budget.Category {
			b.Amount = budget.Amount
			b.UpdatedAt = time.Now()
			return b, nil
		}
	}

	var maxID int32
	for _, b := range m.Budgets[budget.UserID] {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	budget.ID = maxID + 1
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.UserID] = append(m.Budgets[budget.UserID], budget)
	return budget, nil
}

// GetByUser retrieves all budgets for a user in id order
func (m *MockBudgetRepository) GetByUser(userID int32) ([]*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Budget, len(m.Budgets[userID]))
	copy(result, m.Budgets[userID])
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetByUserAndCategory retrieves the budget for one (user, category) pair
func (m *MockBudgetRepository) GetByUserAndCategory(userID int32, category domain.Category) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.Budgets[userID] {
		if b.Category == category {
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// UpdateAmount updates an existing budget's amount by id and owner
func (m *MockBudgetRepository) UpdateAmount(id, userID int32, amount decimal.Decimal) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.Budgets[userID] {
		if b.ID == id {
			b.Amount = amount
			b.UpdatedAt = time.Now()
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// Delete removes a budget when both id and owner match
func (m *MockBudgetRepository) Delete(id, userID int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	budgets := m.Budgets[userID]
	for i, b := range budgets {
		if b.ID == id {
			m.Budgets[userID] = append(budgets[:i], budgets[i+1:]...)
			return nil
		}
	}
	return domain.ErrBudgetNotFound
}

// MockSessionTokenRepository is a mock implementation of
// domain.SessionTokenRepository
type MockSessionTokenRepository struct {
	Tokens map[string]*domain.SessionToken
	ByID   map[uuid.UUID]*domain.SessionToken
}

// NewMockSessionTokenRepository creates a new MockSessionTokenRepository
func NewMockSessionTokenRepository() *MockSessionTokenRepository {
	return &MockSessionTokenRepository{
		Tokens: make(map[string]*domain.SessionToken),
		ByID:   make(map[uuid.UUID]*domain.SessionToken),
	}
}

// Create stores a session token
func (m *MockSessionTokenRepository) Create(token *domain.SessionToken) error {
	token.CreatedAt = time.Now()
	m.Tokens[token.TokenHash] = token
	m.ByID[token.ID] = token
	return nil
}

// GetByHash retrieves a session token by its digest
func (m *MockSessionTokenRepository) GetByHash(hash string) (*domain.SessionToken, error) {
	if token, ok := m.Tokens[hash]; ok {
		return token, nil
	}
	return nil, domain.ErrTokenNotFound
}

// TouchLastUsed updates the token's last-used timestamp
func (m *MockSessionTokenRepository) TouchLastUsed(id uuid.UUID) error {
	token, ok := m.ByID[id]
	if !ok {
		return domain.ErrTokenNotFound
	}
	now := time.Now()
	token.LastUsedAt = &now
	return nil
}

// Revoke marks a token revoked when both id and owner match
func (m *MockSessionTokenRepository) Revoke(id uuid.UUID, userID int32) error {
	token, ok := m.ByID[id]
	if !ok || token.UserID != userID || token.RevokedAt != nil {
		return domain.ErrTokenNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

// MockEventPublisher records published events (helper for handler tests)
type MockEventPublisher struct {
	Events []PublishedEvent
	mu     sync.Mutex
}

// PublishedEvent is one recorded Publish call
type PublishedEvent struct {
	UserID int32
	Event  websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}
