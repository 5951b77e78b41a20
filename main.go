package main

import "github.com/theirongolddev/bookfees/cmd"

func main() {
	cmd.Execute()
}
