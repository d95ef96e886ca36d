package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(Config{Brokers: " , "}, nil)
	require.Error(t, err)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092 ,,b:9092"))
	assert.Empty(t, splitBrokers(""))
}

func TestAcksFor(t *testing.T) {
	assert.Equal(t, kgo.NoAck(), acksFor("0"))
	assert.Equal(t, kgo.LeaderAck(), acksFor("1"))
	assert.Equal(t, kgo.AllISRAcks(), acksFor("all"))
	assert.Equal(t, kgo.AllISRAcks(), acksFor(""))
}

func TestToRecordCopiesHeaders(t *testing.T) {
	rec := toRecord(&Message{
		Topic:   "estatehub.audit",
		Key:     []byte("user-1"),
		Value:   []byte(`{}`),
		Headers: map[string]string{"event_type": "user_deleted"},
	})
	assert.Equal(t, "estatehub.audit", rec.Topic)
	assert.Equal(t, []byte("user-1"), rec.Key)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "event_type", rec.Headers[0].Key)
	assert.Equal(t, []byte("user_deleted"), rec.Headers[0].Value)
}
