package sessionfx

import (
	"go.uber.org/fx"

	"carconvo/internal/services"
	mem "carconvo/pkg/memcache"
)

var Module = fx.Provide(
	provideSessionStore, provideSessionService)

func provideSessionStore() *mem.SessionStore {
	return mem.NewSessionStore()
}

func provideSessionService(store *mem.SessionStore, matcher services.MatchServiceInterface) services.SessionServiceInterface {
	return services.NewSessionService(store, matcher)
}
