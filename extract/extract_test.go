package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/model"
)

func TestExtract_ValidJSON(t *testing.T) {
	m := model.NewMockModel("test")
	m.AddResponse("italian in soho for 4", `{"area":"Soho","cuisine":"Italian","partySize":4}`)

	e := New(m)
	got := e.Extract(context.Background(), "italian in soho for 4", nil)

	assert.Equal(t, "Soho", got.Area)
	assert.Equal(t, "Italian", got.Cuisine)
	assert.Equal(t, 4, got.PartySize)
}

func TestExtract_TrimsWhitespace(t *testing.T) {
	m := model.NewMockModel("test")
	m.AddResponse("input", `{"area":"  Soho ","cuisine":" Thai  "}`)

	got := New(m).Extract(context.Background(), "input", nil)
	assert.Equal(t, "Soho", got.Area)
	assert.Equal(t, "Thai", got.Cuisine)
}

func TestExtract_EmbeddedJSONFallback(t *testing.T) {
	m := model.NewMockModel("test")
	m.AddResponse("input", "Here are the criteria:\n{\"cuisine\":\"Greek\"}\nHope that helps!")

	got := New(m).Extract(context.Background(), "input", nil)
	assert.Equal(t, "Greek", got.Cuisine)
}

func TestExtract_MalformedOutputReturnsEmpty(t *testing.T) {
	m := model.NewMockModel("test")
	m.AddResponse("input", "not json")

	got := New(m).Extract(context.Background(), "input", nil)
	assert.True(t, got.IsEmpty())
}

func TestExtract_TransportFailureReturnsEmpty(t *testing.T) {
	m := model.NewMockModel("test")
	m.FailWith(errors.New("boom"))

	got := New(m).Extract(context.Background(), "anything", nil)
	assert.True(t, got.IsEmpty())
}

func TestExtract_WindowsHistory(t *testing.T) {
	var captured model.Request
	m := capturingModel{onGenerate: func(req model.Request) {
		captured = req
	}}

	history := make([]core.Message, 8)
	for i := range history {
		history[i] = core.NewMessage(core.RoleUser, "turn")
	}

	New(m).Extract(context.Background(), "latest", history)

	// 5 history turns plus the latest message.
	assert.Len(t, captured.Messages, 6)
	assert.Equal(t, "latest", captured.Messages[5].Content)
	assert.True(t, captured.JSONOnly)
}

func TestParseCriteria_EmptyObject(t *testing.T) {
	got, ok := parseCriteria(`{}`)
	assert.True(t, ok)
	assert.True(t, got.IsEmpty())
}

// capturingModel records the request and returns an empty criteria object.
type capturingModel struct {
	onGenerate func(model.Request)
}

func (c capturingModel) Generate(_ context.Context, req model.Request) (*model.Response, error) {
	c.onGenerate(req)
	return &model.Response{Text: "{}", FinishReason: "stop"}, nil
}

func (c capturingModel) Info() model.Info { return model.Info{Name: "capturing", Provider: "mock"} }
