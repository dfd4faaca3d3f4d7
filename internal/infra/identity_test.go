package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextActorProvider(t *testing.T) {
	p := ContextActorProvider{}

	assert.Equal(t, SystemActor, p.CurrentActor(context.Background()))

	ctx := WithActor(context.Background(), "staff@bloomora.example")
	assert.Equal(t, "staff@bloomora.example", p.CurrentActor(ctx))

	empty := WithActor(context.Background(), "")
	assert.Equal(t, SystemActor, p.CurrentActor(empty))
}
