package main

import "github.com/chrisdamba/foodiebot/cmd"

func main() {
	cmd.Execute()
}
