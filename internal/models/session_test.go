package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionState_Profit(t *testing.T) {
	s := SessionState{InitialBalance: 10000, CurrentBalance: 10287.4}
	assert.Equal(t, 287.4, s.Profit())

	s.CurrentBalance = 9987.4
	assert.Equal(t, -12.6, s.Profit())
}

func TestIsWin(t *testing.T) {
	assert.True(t, IsWin(587.4))
	assert.False(t, IsWin(0))
	// любой ненулевой выкуп — выигрыш, как в контроллере
	assert.True(t, IsWin(-1))
}
