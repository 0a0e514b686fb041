package main

import "github.com/iconlens/iconlens/internal/cmd"

func main() {
	cmd.Execute()
}
