package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics_CatalogOrder(t *testing.T) {
	topics := Topics()

	require.Len(t, topics, 9)
	assert.Equal(t, TopicCatalogSize, len(topics))
	assert.Equal(t, "python", topics[0].Key)
	assert.Equal(t, "verbal", topics[8].Key)
}

func TestTopics_ReturnsCopy(t *testing.T) {
	topics := Topics()
	topics[0].Name = "changed"

	assert.Equal(t, "Python Programming", Topics()[0].Name)
}

func TestIsKnownTopic(t *testing.T) {
	assert.True(t, IsKnownTopic("dsa"))
	assert.True(t, IsKnownTopic("sql"))
	assert.False(t, IsKnownTopic("DSA"), "Ключи чувствительны к регистру")
	assert.False(t, IsKnownTopic("golang"))
	assert.False(t, IsKnownTopic(""))
}

func TestLookupTopic(t *testing.T) {
	assert.Equal(t, Topic{Key: "cplusplus", Name: "C++ Programming"}, LookupTopic("cplusplus"))
	assert.Equal(t, Topic{Key: "rust", Name: UnknownTopicName}, LookupTopic("rust"))
}
