package hwgpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockLine is a test double for gpioLine that records calls without
// requiring GPIO hardware or the gpio-sim kernel module.
type mockLine struct {
	value    int
	valueErr error
	closed   bool
}

func (m *mockLine) SetValue(v int) error {
	m.value = v
	return nil
}

func (m *mockLine) Value() (int, error) {
	if m.valueErr != nil {
		return 0, m.valueErr
	}
	return m.value, nil
}

func (m *mockLine) Close() error {
	m.closed = true
	return nil
}

func TestOutputPin_Write_Active(t *testing.T) {
	mock := &mockLine{}
	p := &OutputPin{line: mock}

	p.Write(true)
	assert.Equal(t, 1, mock.value)

	p.Write(false)
	assert.Equal(t, 0, mock.value)
}

func TestOutputPin_ReadActive_ReflectsLastWrite(t *testing.T) {
	mock := &mockLine{}
	p := &OutputPin{line: mock}

	p.Write(true)
	assert.True(t, p.ReadActive())
}

func TestOutputPin_ReadActive_ErrorReadsAsInactive(t *testing.T) {
	mock := &mockLine{valueErr: errors.New("line closed")}
	p := &OutputPin{line: mock}

	assert.False(t, p.ReadActive())
}

func TestOutputPin_Close_ClosesLine(t *testing.T) {
	mock := &mockLine{}
	p := &OutputPin{line: mock}

	require := assert.New(t)
	require.NoError(p.Close())
	require.True(mock.closed)
}

func TestInputPin_Write_IsNoOp(t *testing.T) {
	mock := &mockLine{value: 1}
	p := &InputPin{line: mock}

	p.Write(false)
	assert.Equal(t, 1, mock.value, "Write on an InputPin must not touch the line")
}

func TestInputPin_ReadActive(t *testing.T) {
	mock := &mockLine{value: 1}
	p := &InputPin{line: mock}

	assert.True(t, p.ReadActive())
}
