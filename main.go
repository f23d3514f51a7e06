package main

import "punchsheet/cmd"

func main() {
	cmd.Execute()
}
