// Command warehousectl is the operator CLI: schema migration, seeding and
// offline report generation against the warehouse database.
package main

func main() {
	Execute()
}
