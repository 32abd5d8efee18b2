// Command stylectl inspects the hairstyle catalog: it parses asset names and
// prints the catalog built from the configured object store.
package main

func main() {
	Execute()
}
