package main

import "github.com/joho/godotenv"

func main() {
	// MTF_* variables may come from a local .env; a missing file is fine.
	_ = godotenv.Load(".env")

	Execute()
}
