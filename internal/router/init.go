package router

import (
	"github.com/oksasatya/address-book/internal/application"
	"github.com/oksasatya/address-book/internal/container"
	pginfra "github.com/oksasatya/address-book/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/address-book/internal/interface/http"
	"github.com/oksasatya/address-book/internal/interface/middleware"
	"github.com/oksasatya/address-book/internal/router/modules"
)

type Deps struct {
	Auth      *application.AuthService
	Addresses *application.AddressService
}

func buildDeps() Deps {
	users := pginfra.NewUserRepository(container.GetPGPool())
	addrs := pginfra.NewAddressRepository(container.GetPGPool())

	auth := application.NewAuthService(
		users,
		addrs,
		container.GetGithub(),
		container.GetSession(),
		container.GetConfig().AdminNames(),
		container.GetLogger(),
	)
	addresses := application.NewAddressService(addrs, container.GetLogger())

	return Deps{Auth: auth, Addresses: addresses}
}

// InitModules wires the application modules into the router registry.
// Called once during startup. AuthSession runs on the whole /api group
// before any route policy.
func InitModules(r *Registry) {
	deps := buildDeps()
	logger := container.GetLogger()

	r.Use(middleware.AuthSession(container.GetSession(), deps.Auth))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Auth, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(deps.Auth, deps.Addresses, logger)))
}
