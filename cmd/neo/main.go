// Command neo loads JPL near-Earth object and close-approach data, links the
// two by designation, and inspects, queries, or exports the result.
//
// Usage:
//
//	neo inspect --pdes 433 --verbose
//	neo query --start-date 2020-01-01 --hazardous --outfile hazardous.json
//	neo validate --results hazardous.csv
package main

import "github.com/couchcryptid/neo-data-etl/internal/cli"

func main() {
	cli.Execute()
}
