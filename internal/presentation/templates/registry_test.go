package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

func TestRegisterRejectsUnknownKind(t *testing.T) {
	registry := NewComponentRegistry()
	err := registry.Register("mystery_widget", func(req *ComponentRequest) string { return "" })
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	registry := NewComponentRegistry()
	require.NoError(t, registry.Register(KindCmsBlock, func(req *ComponentRequest) string { return "a" }))

	err := registry.Register(KindCmsBlock, func(req *ComponentRequest) string { return "b" })
	assert.Error(t, err)
}

func TestRegisterRejectsNilFunc(t *testing.T) {
	registry := NewComponentRegistry()
	assert.Error(t, registry.Register(KindCmsBlock, nil))
}

func TestRenderMissingComponentReturnsEmpty(t *testing.T) {
	registry := NewComponentRegistry()
	out := registry.Render(KindProductGrid, &ComponentRequest{Slot: &rendering.Slot{ID: "grid"}})
	assert.Empty(t, out)
}

func TestRenderRecoversFromComponentPanic(t *testing.T) {
	registry := NewComponentRegistry()
	require.NoError(t, registry.Register(KindCmsBlock, func(req *ComponentRequest) string {
		panic("component bug")
	}))

	out := registry.Render(KindCmsBlock, &ComponentRequest{Slot: &rendering.Slot{ID: "block"}})
	assert.Empty(t, out)
}

func TestDefaultRegistryHasAllBuiltins(t *testing.T) {
	registry := NewDefaultRegistry()
	for kind := range knownKinds {
		assert.True(t, registry.Has(kind), "missing builtin %q", kind)
	}
}
