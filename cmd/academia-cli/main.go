package main

import (
	"os"

	"academia-backend/cmd/academia-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("ACADEMIA_BASE_URL")
	if ok {
		cmd.BaseUrl = baseUrl
	}

	cmd.Execute()
}
