package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_FromContext(t *testing.T) {
	t.Run("returns the logger attached to the context", func(t *testing.T) {
		log := New()
		ctx := context.WithValue(context.Background(), ContextKey, log)
		require.Same(t, log, FromContext(ctx))
	})

	t.Run("makes a fresh logger when the context has none", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}
