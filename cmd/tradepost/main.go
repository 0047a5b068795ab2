// Command tradepost tracks the inventory and trades of the White Wolf Inn.
package main

import "github.com/mesh-intelligence/tradepost/internal/cli"

func main() {
	cli.Execute()
}
