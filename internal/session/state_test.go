package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yildizm/TextLens/internal/analysis"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	snap := s.Snapshot()

	assert.Equal(t, analysis.KindSummarize, snap.SelectedKind)
	assert.False(t, snap.Busy)
	assert.False(t, snap.HasError)
	assert.False(t, snap.CanSubmit)
	assert.Equal(t, 0, snap.CharCount)
}

func TestSetTextCountsCharacters(t *testing.T) {
	s := New()
	assert.True(t, s.SetText("héllo 👋"))

	snap := s.Snapshot()
	assert.Equal(t, "héllo 👋", snap.Text)
	assert.Equal(t, 7, snap.CharCount)
	assert.True(t, snap.CanSubmit)
}

func TestWhitespaceCannotSubmit(t *testing.T) {
	s := New()
	s.SetText(" \n\t ")
	assert.False(t, s.CanSubmit())
	assert.Equal(t, 4, s.Snapshot().CharCount)
}

func TestSelectKind(t *testing.T) {
	s := New()
	assert.True(t, s.SelectKind(analysis.KindIntent))
	assert.Equal(t, analysis.KindIntent, s.SelectedKind())

	assert.False(t, s.SelectKind(analysis.Kind("translate")))
	assert.Equal(t, analysis.KindIntent, s.SelectedKind())
}

func TestBusyRejectsMutations(t *testing.T) {
	s := New()
	s.SetText("keep me")
	s.SetError("previous failure")

	assert.True(t, s.BeginBusy())
	assert.False(t, s.BeginBusy(), "only one operation may be in flight")

	assert.False(t, s.SetText("changed"))
	assert.False(t, s.SelectKind(analysis.KindClassify))
	assert.False(t, s.ClearAll())
	assert.False(t, s.CanSubmit())

	snap := s.Snapshot()
	assert.Equal(t, "keep me", snap.Text)
	assert.Equal(t, analysis.KindSummarize, snap.SelectedKind)
	assert.True(t, snap.HasError)
	assert.True(t, snap.Busy)

	s.EndBusy()
	assert.False(t, s.IsBusy())
	assert.True(t, s.SetText("changed"))
}

func TestClearAll(t *testing.T) {
	s := New()
	s.SetText("some text")
	s.SelectKind(analysis.KindSentiment)
	s.SetError("Sentiment analysis failed")

	assert.True(t, s.ClearAll())

	snap := s.Snapshot()
	assert.Empty(t, snap.Text)
	assert.Equal(t, 0, snap.CharCount)
	assert.False(t, snap.HasError)
	assert.Empty(t, snap.ErrorMessage)
	assert.Equal(t, analysis.KindSentiment, snap.SelectedKind, "selection survives a clear")
}

func TestErrorLifecycle(t *testing.T) {
	s := New()
	s.SetError("boom")
	snap := s.Snapshot()
	assert.True(t, snap.HasError)
	assert.Equal(t, "boom", snap.ErrorMessage)

	s.ClearError()
	assert.False(t, s.Snapshot().HasError)
}
