package session

import "sync"

// Onboarding step constants. The step records which answer the bot expects
// next; handlers use it to notice out-of-sequence intents, they never reject
// on it.
const (
	StepNone                 = "none"
	StepAwaitingName         = "awaiting_name"
	StepAwaitingAge          = "awaiting_age"
	StepAwaitingDiagnosisAge = "awaiting_diagnosis_age"
	StepAwaitingDMType       = "awaiting_dm_type"
	StepAwaitingTreatment    = "awaiting_treatment"
	StepDone                 = "done"
)

// Manager tracks the expected onboarding step per user.
type Manager interface {
	SetStep(userID int64, step string)
	Step(userID int64) string
	Clear(userID int64)
}

// MemoryManager keeps steps in process memory. Suitable for a single
// instance; multi-instance deployments should use the Redis manager.
type MemoryManager struct {
	steps map[int64]string
	mu    sync.RWMutex
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{steps: make(map[int64]string)}
}

func (m *MemoryManager) SetStep(userID int64, step string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps[userID] = step
}

func (m *MemoryManager) Step(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	step, exists := m.steps[userID]
	if !exists {
		return StepNone
	}
	return step
}

func (m *MemoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.steps, userID)
}
