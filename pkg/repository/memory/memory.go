package memory

import (
	"errors"

	"github.com/hita/aedip-telemedicina/pkg/domain/interfaces"
)

// ErrNotFound is returned when a record does not exist in the store
var ErrNotFound = errors.New("record not found")

// Memory is an in-process repository used for tests and development mode
type Memory struct {
	cases    *caseRepository
	messages *messageRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		cases:    newCaseRepository(),
		messages: newMessageRepository(),
	}
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.cases
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.messages
}

func (m *Memory) Close() error {
	return nil
}
