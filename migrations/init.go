package migrations

import (
	hooks "github.com/goliatone/go-hooks"
)

func init() {
	Register(hooks.MigrationsFS)
}
