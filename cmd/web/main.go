package main

import "gigup_backend/internal/app"

func main() {
	app.Run()
}
