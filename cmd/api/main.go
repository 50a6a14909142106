package main

import (
	"log"

	"trackfolio/cmd"

	_ "github.com/lib/pq"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	err = apiHandler.StartApi(3009)
	if err != nil {
		log.Fatal(err)
	}
}
