// gigupctl - служебные команды для базы GigUp: миграции, администратор, очистка кодов.
package main

import (
	"os"

	"gigup_backend/internal/config"
	"gigup_backend/internal/database"
)

func main() {
	root := newRootCmd(config.Load, database.Open)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
