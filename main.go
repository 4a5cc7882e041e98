package main

import "github.com/vyrtus/helpdesk/cmd"

func main() {
	cmd.Execute()
}
