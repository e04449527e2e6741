package notifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpNotifier_SendDigest(t *testing.T) {
	n := NewNoOpNotifier()
	assert.NoError(t, n.SendDigest(context.Background(), sampleDigest()))
	assert.NoError(t, n.SendDigest(context.Background(), &Digest{}))
}
