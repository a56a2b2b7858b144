package main

import "cleaning-marketplace-api/app"

func main() {
	app.Run()
}
