// ./main.go
package main

import (
	"github.com/SSRQ-SDS-FDS/xmlcustomformatter/cmd"
)

func main() {
	cmd.Execute()
}
