package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	userID   int32
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string, userID int32) *mockClient {
	return &mockClient{
		id:       id,
		userID:   userID,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) UserID() int32 {
	return m.userID
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([][]byte, len(m.messages))
	copy(result, m.messages)
	return result
}

func TestHub_RegisterAndCount(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("c1", 1)
	client2 := newMockClient("c2", 1)
	client3 := newMockClient("c3", 2)

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.ClientCount(1))
	assert.Equal(t, 1, hub.ClientCount(2))
	assert.Equal(t, 3, hub.TotalClientCount())
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()

	client := newMockClient("c1", 1)
	hub.Register(client)
	require.Equal(t, 1, hub.ClientCount(1))

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount(1))
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_UnregisterUnknownClient(t *testing.T) {
	hub := NewHub()

	// Should not panic
	hub.Unregister(newMockClient("ghost", 1))
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_BroadcastToOwnerOnly(t *testing.T) {
	hub := NewHub()

	owner := newMockClient("c1", 1)
	other := newMockClient("c2", 2)
	hub.Register(owner)
	hub.Register(other)

	hub.Broadcast(1, TransactionCreated(map[string]int{"ExpenseID": 1}))

	// Sends happen in goroutines
	require.Eventually(t, func() bool {
		return len(owner.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Empty(t, other.GetMessages())
}

func TestHub_BroadcastAllClientsOfUser(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("c1", 1)
	client2 := newMockClient("c2", 1)
	hub.Register(client1)
	hub.Register(client2)

	hub.Broadcast(1, BudgetUpdated(map[string]int{"BudgetID": 3}))

	require.Eventually(t, func() bool {
		return len(client1.GetMessages()) == 1 && len(client2.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastNoClients(t *testing.T) {
	hub := NewHub()

	// Should not panic or block
	hub.Broadcast(42, TransactionDeleted(map[string]int{"ExpenseID": 1}))
}

func TestHub_ConcurrentRegisterUnregister(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := newMockClient(string(rune('a'+n%26))+"x", int32(n%5))
			hub.Register(client)
			hub.Broadcast(int32(n%5), TransactionCreated(nil))
			hub.Unregister(client)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.TotalClientCount())
}
