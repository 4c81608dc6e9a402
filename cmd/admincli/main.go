package main

import "github.com/jhoicas/tienda-admin-api/cmd/admincli/commands"

func main() {
	commands.Execute()
}
