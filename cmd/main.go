// Command fightpicks keeps a fight-card pick draft in sync with the picks server.
package main

import "github.com/okian/fightpicks/internal/cli"

func main() {
	cli.Execute()
}
