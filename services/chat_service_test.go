package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMessageAndHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)

	tripID := uint(7)
	require.NoError(t, svc.SaveMessage("best time to visit Jaipur?", "October to March.", []string{"Tell me more about Jaipur culture"}, &tripID))
	require.NoError(t, svc.SaveMessage("and food?", "Try laal maas.", nil, nil))

	messages, err := svc.History(0)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// newest first
	assert.Equal(t, "and food?", messages[0].Message)
	assert.Nil(t, messages[0].TripID)

	require.NotNil(t, messages[1].TripID)
	assert.EqualValues(t, 7, *messages[1].TripID)

	var suggestions []string
	require.NoError(t, json.Unmarshal(messages[1].Suggestions, &suggestions))
	assert.Equal(t, []string{"Tell me more about Jaipur culture"}, suggestions)
}

func TestHistoryLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.SaveMessage("q", "a", nil, nil))
	}

	messages, err := svc.History(3)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
}
