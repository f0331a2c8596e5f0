// Package router wires the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "invest_backend/internal/feature/auth/transport/handler"
	ledgerhandler "invest_backend/internal/feature/ledger/transport/handler"
	watchhandler "invest_backend/internal/feature/watchlist/transport/handler"
	phandler "invest_backend/internal/platform/http/handler"
	jwtmw "invest_backend/internal/platform/jwt"
)

// NewRouter builds the gin engine. Everything below the auth group
// requires a valid bearer token signed with jwtSecret.
func NewRouter(auth *authhandler.AuthHandler, ledger *ledgerhandler.LedgerHandler,
	watchlist *watchhandler.WatchlistHandler, jwtSecret string) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", phandler.Health)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)

	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(jwtSecret))
	{
		protected.GET("/me", auth.Me)

		protected.POST("/transactions", ledger.Submit)
		protected.GET("/transactions", ledger.History)
		protected.GET("/portfolio", ledger.Portfolio)

		protected.GET("/watchlist", watchlist.List)
		protected.POST("/watchlist", watchlist.Add)
		protected.DELETE("/watchlist/:symbol", watchlist.Remove)
	}

	return r
}
