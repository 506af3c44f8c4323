package main

import "github.com/vietddude/employees/internal/cli"

func main() {
	cli.Execute()
}
