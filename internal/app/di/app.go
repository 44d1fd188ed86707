package di

import (
	"authgate/internal/app/config"
	authhandler "authgate/internal/feature/auth/transport/handler"
	authusecase "authgate/internal/feature/auth/usecase"
	panelhandler "authgate/internal/feature/panel/transport/handler"
	"authgate/internal/platform/cookie"
	jwtmw "authgate/internal/platform/jwt"
	"authgate/internal/platform/metrics"
	"authgate/internal/platform/password"
)

// LoginEndpoint is where the login page posts credentials.
const LoginEndpoint = "/auth/login"

// App holds the wired components served by the router.
type App struct {
	Store   UserStore
	Codec   *jwtmw.Codec
	Cookies *cookie.Transport
	Metrics *metrics.Metrics
	Gate    jwtmw.GateConfig

	Auth  *authhandler.AuthHandler
	Panel *panelhandler.PanelHandler
}

// NewApp wires the flows, the guard and the pages on top of store.
// m may be nil, in which case nothing is counted.
func NewApp(cfg *config.Config, store UserStore, m *metrics.Metrics) (*App, error) {
	codec, err := jwtmw.NewCodec(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	cookies := cookie.NewTransport(cfg.SecureCookies())
	gate := jwtmw.DefaultGateConfig()

	authUC := authusecase.NewAuthUsecase(store, password.NewHasher(), codec)
	guard := panelhandler.NewGuard(codec, cookies)

	return &App{
		Store:   store,
		Codec:   codec,
		Cookies: cookies,
		Metrics: m,
		Gate:    gate,
		Auth:    authhandler.NewAuthHandler(authUC, cookies, m),
		Panel: panelhandler.NewPanelHandler(guard, panelhandler.Paths{
			Login:          gate.LoginPath,
			ProtectedEntry: gate.ProtectedEntry,
			LoginEndpoint:  LoginEndpoint,
		}),
	}, nil
}
