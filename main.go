package main

import "ride-compare-backend/cmd"

func main() {
	cmd.Run()
}
