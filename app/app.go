package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/ecalder/formlab/config"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
}
