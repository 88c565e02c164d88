package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyRoundTrip(t *testing.T) {
	key := Key("new-york", GamePick4)
	assert.Equal(t, "new-york-Pick 4", key)

	jurisdiction, game, ok := SplitKey(key)
	assert.True(t, ok)
	assert.Equal(t, "new-york", jurisdiction)
	assert.Equal(t, GamePick4, game)
}

func TestSplitKeyRejectsUnknownGame(t *testing.T) {
	_, _, ok := SplitKey("texas-Powerball")
	assert.False(t, ok)

	_, _, ok = SplitKey("-Pick 3")
	assert.False(t, ok)
}
