package main

import "github.com/nic-paul/sqlbind/cmd"

func main() {
	cmd.Execute()
}
