// Command uplyft is the terminal client for the Uplyft AI Support Assistant.
package main

import "github.com/diogo/uplyft/internal/commands"

func main() {
	commands.Execute()
}
