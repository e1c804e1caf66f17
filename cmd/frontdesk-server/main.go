package main

import "github.com/BrandonDHaskell/Frontdesk/server/cmd/frontdesk-server/command"

func main() {
	command.Execute()
}
