package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restyhq/resty/core"
)

// Interface compliance (compile-time assertion)
var _ Model = (*MockModel)(nil)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("test")
	m.AddResponse("hello", "hi there")

	resp, err := m.Generate(context.Background(), Request{
		Messages: []core.Message{core.NewMessage(core.RoleUser, "hello")},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi there", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestMockModel_EchoesUnknownInput(t *testing.T) {
	m := NewMockModel("test")

	resp, err := m.Generate(context.Background(), Request{
		Messages: []core.Message{core.NewMessage(core.RoleUser, "anything")},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "anything")
}

func TestMockModel_FailWith(t *testing.T) {
	m := NewMockModel("test")
	wantErr := errors.New("boom")
	m.FailWith(wantErr)

	_, err := m.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, wantErr)
}

func TestMockModel_RespectsContext(t *testing.T) {
	m := NewMockModel("test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("test")
	info := m.Info()
	assert.Equal(t, "test", info.Name)
	assert.Equal(t, "mock", info.Provider)
}
