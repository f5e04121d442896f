package main

import "places-api/cmd"

func main() {
	cmd.Execute()
}
