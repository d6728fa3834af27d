package main

import "github.com/michaelsholadiran/laravel-cheat-code/cmd"

func main() {
	cmd.Execute()
}
