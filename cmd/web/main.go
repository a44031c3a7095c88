package main

import "medcase_backend/internal/app"

func main() {
	app.Run()
}
