package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanalyst/pkg/core/chat"
	"finanalyst/pkg/core/metrics"
	"finanalyst/pkg/models"
)

func analysisFor(label string) *metrics.Analysis {
	return &metrics.Analysis{
		Rows: []models.EnrichedLineItem{
			{LineItem: models.LineItem{Label: label, Prior: 1, Current: 2}},
		},
	}
}

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager()
	s := m.Create()
	require.NotEmpty(t, s.ID)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("nope")
	assert.False(t, ok)
}

func TestSessionStartsEmpty(t *testing.T) {
	s := NewManager().Create()
	assert.Nil(t, s.Analysis())
	assert.Empty(t, s.Context())

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.WelcomeText, msgs[0].Text)
}

func TestSetAnalysisFlipsLeadTurnOnce(t *testing.T) {
	s := NewManager().Create()

	s.SetAnalysis(analysisFor("TOTAL ASSETS"), "ctx-1")
	assert.Equal(t, chat.DataReadyText, s.Messages()[0].Text)

	s.Append(chat.Turn{Role: chat.RoleUser, Text: "hỏi"})
	s.SetAnalysis(analysisFor("TOTAL ASSETS v2"), "ctx-2")

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.DataReadyText, msgs[0].Text)
	assert.Equal(t, "hỏi", msgs[1].Text)
}

func TestReuploadReplacesContext(t *testing.T) {
	s := NewManager().Create()

	s.SetAnalysis(analysisFor("first"), "ctx-1")
	assert.Equal(t, "ctx-1", s.Context())
	assert.Equal(t, "first", s.Analysis().Rows[0].Label)

	s.SetAnalysis(analysisFor("second"), "ctx-2")
	assert.Equal(t, "ctx-2", s.Context())
	assert.Equal(t, "second", s.Analysis().Rows[0].Label)
}

func TestAppendKeepsOrder(t *testing.T) {
	s := NewManager().Create()
	s.Append(chat.Turn{Role: chat.RoleUser, Text: "a"})
	s.Append(chat.Turn{Role: chat.RoleAssistant, Text: "b"})

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "a", msgs[1].Text)
	assert.Equal(t, "b", msgs[2].Text)
}
