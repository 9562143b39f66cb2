package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeleteDecision_String(t *testing.T) {
	assert.Equal(t, "pending", DeletePending.String())
	assert.Equal(t, "confirmed", DeleteConfirmed.String())
	assert.Equal(t, "pending", DeleteDecision(7).String(), "不明な値は削除しない側に倒す")
}

func TestRequester_Authenticated(t *testing.T) {
	assert.False(t, Requester{}.Authenticated())
	assert.True(t, Requester{UserID: uuid.New()}.Authenticated())
}
