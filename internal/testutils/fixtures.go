package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	redisclient "github.com/KirkDiggler/agent-sandbox/internal/redis"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/gamelog"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/memory"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/world"
)

// Location IDs used by fixtures
const (
	LocationCamp   = "camp"
	LocationForest = "forest"
	LocationRuins  = "ruins"
)

// CreateTestLocations returns a camp, a safe forest and dangerous ruins
func CreateTestLocations() []*entities.Location {
	return []*entities.Location{
		{ID: LocationCamp, Name: "Camp", ResourceType: entities.ResourceNone, DangerLevel: 0},
		{ID: LocationForest, Name: "Forest", ResourceType: entities.ResourceWood, DangerLevel: 0},
		{ID: LocationRuins, Name: "Ruins", ResourceType: entities.ResourceMetal, DangerLevel: 3},
	}
}

// Repositories bundles every Redis repository over one miniredis server
type Repositories struct {
	Client   redisclient.Client
	Server   *miniredis.Miniredis
	NPC      npc.Repository
	Location location.Repository
	Item     item.Repository
	Memory   memory.Repository
	World    world.Repository
	GameLog  gamelog.Repository
}

// NewRedisRepositories creates all repositories against a fresh miniredis
func NewRedisRepositories(t *testing.T) *Repositories {
	t.Helper()

	client, mr := CreateTestRedisClient(t)
	r := &Repositories{Client: client, Server: mr}

	var err error
	r.NPC, err = npc.NewRedis(&npc.RedisConfig{Client: client})
	require.NoError(t, err)
	r.Location, err = location.NewRedis(&location.RedisConfig{Client: client})
	require.NoError(t, err)
	r.Item, err = item.NewRedis(&item.RedisConfig{Client: client})
	require.NoError(t, err)
	r.Memory, err = memory.NewRedis(&memory.RedisConfig{Client: client})
	require.NoError(t, err)
	r.World, err = world.NewRedis(&world.RedisConfig{Client: client})
	require.NoError(t, err)
	r.GameLog, err = gamelog.NewRedis(&gamelog.RedisConfig{Client: client})
	require.NoError(t, err)

	return r
}
