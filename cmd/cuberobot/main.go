// Command cuberobot compiles Rubik's Cube solutions for a two-servo solving robot.
package main

import "github.com/SeamusWaldron/cuberobot/internal/cli"

func main() {
	cli.Execute()
}
