package amqp

import (
	"encoding/json"
	"time"
)

// Event types carried on the expense events queue.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseDeleted = "expense.deleted"
	EventTemplateLoaded = "template.loaded"
)

// ExpenseEventMessage is a lightweight notification. It carries only the
// event type and ids; consumers fetch the full rows from the database, so a
// stale message never overwrites newer data.
type ExpenseEventMessage struct {
	Type       string    `json:"type"`
	ExpenseIDs []int64   `json:"expenseIds"`
	Period     string    `json:"period"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(eventType string, period string, ids ...int64) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Type:       eventType,
		ExpenseIDs: ids,
		Period:     period,
		Timestamp:  time.Now(),
	}
}

func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
