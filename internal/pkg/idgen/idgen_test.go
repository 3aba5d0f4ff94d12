package idgen_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/agent-sandbox/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("item").Generate()
	assert.True(t, strings.HasPrefix(id, "item_"))
	assert.Len(t, id, len("item_")+36)
	assert.NotEqual(t, id, idgen.NewUUID("item").Generate())
}

func TestSequentialGeneratorSorts(t *testing.T) {
	g := idgen.NewSequential("mem")
	ids := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		ids = append(ids, g.Generate())
	}
	assert.Equal(t, "mem_000001", ids[0])
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestTimeOrderedGeneratorSorts(t *testing.T) {
	g := idgen.NewTimeOrdered("log")
	first := g.Generate()
	second := g.Generate()
	assert.True(t, strings.HasPrefix(first, "log_"))
	assert.Less(t, first, second)
}
