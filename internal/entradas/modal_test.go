package entradas_test

import (
	"testing"

	"github.com/almoxarifado/almox/internal/entradas"
	"github.com/stretchr/testify/assert"
)

func TestModal_InitialClosed(t *testing.T) {
	var m entradas.Modal
	assert.Equal(t, entradas.PhaseClosed, m.Phase())
	assert.False(t, m.Visible())
}

func TestModal_OpenCloseFinish(t *testing.T) {
	var m entradas.Modal
	assert.True(t, m.Open())
	assert.Equal(t, entradas.PhaseOpen, m.Phase())

	assert.True(t, m.RequestClose())
	assert.Equal(t, entradas.PhaseClosing, m.Phase())
	assert.True(t, m.Visible(), "still drawn while the exit animation plays")

	assert.True(t, m.AnimationFinished())
	assert.Equal(t, entradas.PhaseClosed, m.Phase())
	assert.False(t, m.Visible())
}

func TestModal_StaleSignalWhileOpenIsNoop(t *testing.T) {
	var m entradas.Modal
	m.Open()
	assert.False(t, m.AnimationFinished())
	assert.Equal(t, entradas.PhaseOpen, m.Phase())
}

func TestModal_DuplicateSignal(t *testing.T) {
	var m entradas.Modal
	m.Open()
	m.RequestClose()
	assert.True(t, m.AnimationFinished())
	assert.False(t, m.AnimationFinished())
	assert.Equal(t, entradas.PhaseClosed, m.Phase())
}

func TestModal_InvalidTransitions(t *testing.T) {
	var m entradas.Modal
	assert.False(t, m.RequestClose(), "close while closed")
	assert.False(t, m.AnimationFinished(), "finish while closed")

	m.Open()
	assert.False(t, m.Open(), "open while open")

	m.RequestClose()
	assert.False(t, m.Open(), "open while closing")
	assert.False(t, m.RequestClose(), "close while closing")
	assert.Equal(t, entradas.PhaseClosing, m.Phase())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "closed", entradas.PhaseClosed.String())
	assert.Equal(t, "open", entradas.PhaseOpen.String())
	assert.Equal(t, "closing", entradas.PhaseClosing.String())
	assert.Equal(t, "unknown", entradas.Phase(9).String())
}
